package models

import (
	"errors"
	"fmt"
	"strings"
)

// Category is the fixed business type enumeration.
type Category string

const (
	CategoryAll           Category = "all"
	CategoryRestaurant    Category = "restaurant"
	CategoryCafe          Category = "cafe"
	CategoryRetail        Category = "retail"
	CategoryService       Category = "service"
	CategoryEntertainment Category = "entertainment"
)

// Categories lists the concrete business types in selector order. The "all"
// sentinel is not a member.
var Categories = []Category{
	CategoryRestaurant,
	CategoryCafe,
	CategoryRetail,
	CategoryService,
	CategoryEntertainment,
}

var ErrInvalidCategory = errors.New("invalid category")

// Valid reports whether c is one of the concrete business types.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) Label() string {
	switch c {
	case CategoryAll:
		return "All"
	case CategoryRestaurant:
		return "Restaurant"
	case CategoryCafe:
		return "Cafe"
	case CategoryRetail:
		return "Retail"
	case CategoryService:
		return "Service"
	case CategoryEntertainment:
		return "Entertainment"
	}
	return string(c)
}

// ParseCategory accepts a concrete category or the "all" sentinel. An empty
// string means "all".
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "" || c == CategoryAll {
		return CategoryAll, nil
	}
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Business is an immutable directory entry.
type Business struct {
	ID          string   `json:"id" yaml:"id" db:"id"`
	Name        string   `json:"name" yaml:"name" db:"name"`
	Type        Category `json:"type" yaml:"type" db:"type"`
	Rating      float64  `json:"rating" yaml:"rating" db:"rating"`
	ReviewCount int      `json:"review_count" yaml:"review_count" db:"review_count"`
	Address     string   `json:"address" yaml:"address" db:"address"`
	Lat         float64  `json:"lat" yaml:"lat" db:"lat"`
	Lng         float64  `json:"lng" yaml:"lng" db:"lng"`
}

// Validate checks the record against the data model constraints.
func (b Business) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("business id is required")
	}
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("business %s: name is required", b.ID)
	}
	if !b.Type.Valid() {
		return fmt.Errorf("business %s: %w: %q", b.ID, ErrInvalidCategory, b.Type)
	}
	if b.Rating < MinRating || b.Rating > MaxRating {
		return fmt.Errorf("business %s: rating %.2f out of range", b.ID, b.Rating)
	}
	if b.ReviewCount < 0 {
		return fmt.Errorf("business %s: negative review count", b.ID)
	}
	if !(Coordinate{Lat: b.Lat, Lng: b.Lng}).Valid() {
		return fmt.Errorf("business %s: invalid coordinates (%f, %f)", b.ID, b.Lat, b.Lng)
	}
	return nil
}

func (b Business) Position() Coordinate {
	return Coordinate{Lat: b.Lat, Lng: b.Lng}
}

// FilterRequest is the query form accepted by the HTTP surface.
type FilterRequest struct {
	Category  string   `form:"category"`
	MaxRating *float64 `form:"max_rating"`
}

type BusinessListResponse struct {
	Businesses []Business `json:"businesses"`
	Count      int        `json:"count"`
	Filters    Filters    `json:"filters"`
}

// Filters echoes the filter values a result was computed with.
type Filters struct {
	Category  Category `json:"category"`
	MaxRating float64  `json:"max_rating"`
}
