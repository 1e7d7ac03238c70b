package mapview

import (
	"fmt"
	"sync"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry is a GeoJSON Point; coordinates are [lng, lat].
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// GeoJSONProvider renders the overlay as a FeatureCollection. Map options are
// kept aside and available through Options.
type GeoJSONProvider struct {
	mu         sync.Mutex
	created    bool
	options    MapOptions
	collection FeatureCollection
	index      map[string]int
}

func NewGeoJSONProvider() *GeoJSONProvider {
	return &GeoJSONProvider{}
}

func (p *GeoJSONProvider) CreateMap(opts MapOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.created = true
	p.options = opts
	p.collection = FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
	p.index = map[string]int{}
	return nil
}

func (p *GeoJSONProvider) AddMarker(m Marker) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.created {
		return ErrMapNotCreated
	}
	p.index[m.ID] = len(p.collection.Features)
	p.collection.Features = append(p.collection.Features, Feature{
		Type: "Feature",
		ID:   m.ID,
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: [2]float64{m.Position.Lng, m.Position.Lat},
		},
		Properties: map[string]interface{}{
			"kind":         string(m.Kind),
			"title":        m.Title,
			"category":     string(m.Icon.Category),
			"marker-color": m.Icon.Color,
		},
	})
	return nil
}

func (p *GeoJSONProvider) ShowInfo(markerID string, info InfoWindow) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.created {
		return ErrMapNotCreated
	}
	i, ok := p.index[markerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMarker, markerID)
	}
	props := p.collection.Features[i].Properties
	props["rating"] = info.Rating
	props["review_count"] = info.ReviewCount
	props["address"] = info.Address
	props["category_label"] = info.Category
	return nil
}

func (p *GeoJSONProvider) Collection() FeatureCollection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.collection
}

func (p *GeoJSONProvider) Options() MapOptions {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.options
}
