package models

import "math"

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// FallbackCoordinate is used whenever the device location cannot be obtained.
var FallbackCoordinate = Coordinate{Lat: 37.7749, Lng: -122.4194}

func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

type LocationResponse struct {
	Coordinate Coordinate `json:"coordinate"`
	Fallback   bool       `json:"fallback"`
	Reason     string     `json:"reason,omitempty"`
}
