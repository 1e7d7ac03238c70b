package mapview

import (
	"fmt"
	"sync"
)

// Scene is the serialized map handed to the page's Leaflet script.
type Scene struct {
	Map     MapOptions            `json:"map"`
	Markers []Marker              `json:"markers"`
	Info    map[string]InfoWindow `json:"info"`
}

// LeafletProvider records provider calls into a Scene instead of driving a
// live widget. The browser replays the scene with Leaflet.
type LeafletProvider struct {
	mu      sync.Mutex
	created bool
	scene   Scene
	index   map[string]int
}

func NewLeafletProvider() *LeafletProvider {
	return &LeafletProvider{}
}

// CreateMap starts a new scene, discarding any previous markers.
func (p *LeafletProvider) CreateMap(opts MapOptions) error {
	if !opts.Center.Valid() {
		return fmt.Errorf("invalid map center (%f, %f)", opts.Center.Lat, opts.Center.Lng)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.created = true
	p.scene = Scene{
		Map:     opts,
		Markers: []Marker{},
		Info:    map[string]InfoWindow{},
	}
	p.index = map[string]int{}
	return nil
}

func (p *LeafletProvider) AddMarker(m Marker) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.created {
		return ErrMapNotCreated
	}
	if _, dup := p.index[m.ID]; dup {
		return fmt.Errorf("duplicate marker %s", m.ID)
	}
	p.index[m.ID] = len(p.scene.Markers)
	p.scene.Markers = append(p.scene.Markers, m)
	return nil
}

func (p *LeafletProvider) ShowInfo(markerID string, info InfoWindow) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.created {
		return ErrMapNotCreated
	}
	if _, ok := p.index[markerID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMarker, markerID)
	}
	p.scene.Info[markerID] = info
	return nil
}

// Scene returns a copy of the current scene.
func (p *LeafletProvider) Scene() Scene {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := Scene{
		Map:     p.scene.Map,
		Markers: append([]Marker{}, p.scene.Markers...),
		Info:    make(map[string]InfoWindow, len(p.scene.Info)),
	}
	for k, v := range p.scene.Info {
		out.Info[k] = v
	}
	return out
}
