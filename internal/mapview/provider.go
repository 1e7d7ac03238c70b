// Package mapview projects a filtered business list onto a map widget. The
// widget itself sits behind Provider so the overlay logic can be exercised
// without a browser.
package mapview

import (
	"errors"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
)

var (
	ErrMapNotCreated = errors.New("map not created")
	ErrUnknownMarker = errors.New("unknown marker")
)

// Provider is the boundary to a mapping library.
type Provider interface {
	CreateMap(opts MapOptions) error
	AddMarker(m Marker) error
	ShowInfo(markerID string, info InfoWindow) error
}

type MapOptions struct {
	Center      models.Coordinate `json:"center"`
	Zoom        int               `json:"zoom"`
	TileURL     string            `json:"tile_url,omitempty"`
	Attribution string            `json:"attribution,omitempty"`
}

// UserMarkerID is reserved for the viewer's own position.
const UserMarkerID = "user-location"

type MarkerKind string

const (
	MarkerBusiness MarkerKind = "business"
	MarkerUser     MarkerKind = "user"
)

type Marker struct {
	ID       string            `json:"id"`
	Kind     MarkerKind        `json:"kind"`
	Position models.Coordinate `json:"position"`
	Title    string            `json:"title"`
	Icon     Icon              `json:"icon"`
}

// InfoWindow is the popup shown when a marker is clicked.
type InfoWindow struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Rating      string `json:"rating"`
	ReviewCount int    `json:"review_count"`
	Address     string `json:"address"`
}
