package directory

import (
	"fmt"
	"math"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
)

// Options describes the filter selectors. The enumerations are fixed; Counts
// and Ratings are informational and computed from the data.
type Options struct {
	Categories  []CategoryOption   `json:"categories"`
	RatingSteps []float64          `json:"rating_steps"`
	Default     models.Filters     `json:"default"`
	Counts      map[string]int     `json:"counts"`
	Ratings     models.RatingStats `json:"ratings"`
}

type CategoryOption struct {
	Value models.Category `json:"value"`
	Label string          `json:"label"`
}

// Categories returns the selector entries, "all" first.
func Categories() []CategoryOption {
	out := make([]CategoryOption, 0, len(models.Categories)+1)
	out = append(out, CategoryOption{Value: models.CategoryAll, Label: models.CategoryAll.Label()})
	for _, c := range models.Categories {
		out = append(out, CategoryOption{Value: c, Label: c.Label()})
	}
	return out
}

func RatingSteps() []float64 {
	return append([]float64(nil), models.RatingSteps...)
}

// Summarize builds the selector options together with per-category counts and
// rating statistics for businesses.
func Summarize(businesses []models.Business) Options {
	counts := make(map[string]int, len(models.Categories)+1)
	for _, c := range models.Categories {
		counts[string(c)] = 0
	}
	counts[string(models.CategoryAll)] = len(businesses)

	stats := models.RatingStats{Count: len(businesses)}
	if len(businesses) > 0 {
		stats.Min = math.Inf(1)
		stats.Max = math.Inf(-1)
	}
	var sum float64
	for _, b := range businesses {
		counts[string(b.Type)]++
		sum += b.Rating
		stats.Min = math.Min(stats.Min, b.Rating)
		stats.Max = math.Max(stats.Max, b.Rating)
	}
	if len(businesses) > 0 {
		stats.Average = math.Round(sum/float64(len(businesses))*100) / 100
	}

	return Options{
		Categories:  Categories(),
		RatingSteps: RatingSteps(),
		Default:     NewViewState().Filters(),
		Counts:      counts,
		Ratings:     stats,
	}
}

// ParseMaxRating validates a threshold supplied by a client.
func ParseMaxRating(v float64) (float64, error) {
	if math.IsNaN(v) || v < models.MinRating || v > models.MaxRating {
		return 0, &ValidationError{Field: "max_rating", Message: fmt.Sprintf("must be between %.1f and %.1f", models.MinRating, models.MaxRating)}
	}
	return v, nil
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

// ParseFilters turns raw client input into filter values. An empty category
// means "all" and a nil threshold means the default maximum.
func ParseFilters(category string, maxRating *float64) (models.Filters, error) {
	f := NewViewState().Filters()

	c, err := models.ParseCategory(category)
	if err != nil {
		return models.Filters{}, fmt.Errorf("category: %w", err)
	}
	f.Category = c

	if maxRating != nil {
		t, err := ParseMaxRating(*maxRating)
		if err != nil {
			return models.Filters{}, err
		}
		f.MaxRating = t
	}
	return f, nil
}
