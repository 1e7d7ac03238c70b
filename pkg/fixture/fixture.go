// Package fixture holds the static business list compiled into every binary.
package fixture

import (
	_ "embed"
	"fmt"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed businesses.yaml
var businessesYAML []byte

type document struct {
	Businesses []models.Business `yaml:"businesses"`
}

// Businesses decodes and validates the embedded fixture. The returned slice is
// a fresh copy on every call.
func Businesses() ([]models.Business, error) {
	return Parse(businessesYAML)
}

// Parse decodes a fixture document and validates every record.
func Parse(data []byte) ([]models.Business, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Businesses))
	for _, b := range doc.Businesses {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("invalid fixture: %w", err)
		}
		if _, dup := seen[b.ID]; dup {
			return nil, fmt.Errorf("invalid fixture: duplicate business id %s", b.ID)
		}
		seen[b.ID] = struct{}{}
	}

	if doc.Businesses == nil {
		doc.Businesses = []models.Business{}
	}
	return doc.Businesses, nil
}

// MustBusinesses panics when the embedded fixture is broken.
func MustBusinesses() []models.Business {
	list, err := Businesses()
	if err != nil {
		panic(err)
	}
	return list
}
