package mapview

import (
	"fmt"
	"strconv"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
)

const (
	DefaultZoom        = 13
	DefaultTileURL     = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution = "&copy; OpenStreetMap contributors"
)

// Overlay renders businesses onto any Provider.
type Overlay struct {
	Zoom        int
	TileURL     string
	Attribution string
}

func NewOverlay(zoom int, tileURL, attribution string) *Overlay {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	if tileURL == "" {
		tileURL = DefaultTileURL
	}
	if attribution == "" {
		attribution = DefaultAttribution
	}
	return &Overlay{Zoom: zoom, TileURL: tileURL, Attribution: attribution}
}

// Render creates the map at center, marks the viewer's own position there and
// adds one marker with an info window per business, in list order. The first
// provider error aborts rendering.
func (o *Overlay) Render(p Provider, businesses []models.Business, center models.Coordinate) error {
	err := p.CreateMap(MapOptions{
		Center:      center,
		Zoom:        o.Zoom,
		TileURL:     o.TileURL,
		Attribution: o.Attribution,
	})
	if err != nil {
		return fmt.Errorf("create map: %w", err)
	}
	if err := p.AddMarker(UserMarker(center)); err != nil {
		return fmt.Errorf("add user marker: %w", err)
	}

	for _, b := range businesses {
		if err := p.AddMarker(MarkerFor(b)); err != nil {
			return fmt.Errorf("add marker %s: %w", b.ID, err)
		}
		if err := p.ShowInfo(b.ID, InfoFor(b)); err != nil {
			return fmt.Errorf("info window %s: %w", b.ID, err)
		}
	}
	return nil
}

func MarkerFor(b models.Business) Marker {
	return Marker{
		ID:       b.ID,
		Kind:     MarkerBusiness,
		Position: b.Position(),
		Title:    b.Name,
		Icon:     IconFor(b.Type),
	}
}

// UserMarker marks the resolved viewer position. It carries no info window.
func UserMarker(at models.Coordinate) Marker {
	return Marker{
		ID:       UserMarkerID,
		Kind:     MarkerUser,
		Position: at,
		Title:    "Your Location",
		Icon:     IconForUser(),
	}
}

func InfoFor(b models.Business) InfoWindow {
	return InfoWindow{
		Title:       b.Name,
		Category:    b.Type.Label(),
		Rating:      FormatRating(b.Rating),
		ReviewCount: b.ReviewCount,
		Address:     b.Address,
	}
}

// FormatRating rounds to one decimal place.
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}
