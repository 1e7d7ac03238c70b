package directory

import "github.com/binhbb2204/Business-Directory-Group13/pkg/models"

// ViewState is the per-viewer UI state. Values are snapshots: every
// transition returns a new ViewState and leaves the receiver untouched.
type ViewState struct {
	Category  models.Category   `json:"category"`
	MaxRating float64           `json:"max_rating"`
	Location  models.Coordinate `json:"location"`
	Located   bool              `json:"located"`
}

// NewViewState returns the state a fresh session starts with.
func NewViewState() ViewState {
	return ViewState{
		Category:  models.CategoryAll,
		MaxRating: models.DefaultMaxRating,
		Location:  models.FallbackCoordinate,
	}
}

func (s ViewState) WithCategory(c models.Category) ViewState {
	s.Category = c
	return s
}

func (s ViewState) WithMaxRating(t float64) ViewState {
	s.MaxRating = t
	return s
}

// WithLocation records a resolved map centre. It has no effect on Visible.
func (s ViewState) WithLocation(c models.Coordinate) ViewState {
	s.Location = c
	s.Located = true
	return s
}

// Reset clears the filters but keeps the resolved location.
func (s ViewState) Reset() ViewState {
	fresh := NewViewState()
	fresh.Location = s.Location
	fresh.Located = s.Located
	return fresh
}

func (s ViewState) Visible(businesses []models.Business) []models.Business {
	return Filter(businesses, s.Category, s.MaxRating)
}

func (s ViewState) Filters() models.Filters {
	return models.Filters{Category: s.Category, MaxRating: s.MaxRating}
}
