package directory

import "github.com/binhbb2204/Business-Directory-Group13/pkg/models"

// Filter returns the businesses whose rating is at most maxRating and whose
// type matches category, preserving input order. models.CategoryAll disables
// the category predicate. The input is never modified and the result is never
// nil.
func Filter(businesses []models.Business, category models.Category, maxRating float64) []models.Business {
	out := make([]models.Business, 0, len(businesses))
	for _, b := range businesses {
		if b.Rating > maxRating {
			continue
		}
		if category != models.CategoryAll && b.Type != category {
			continue
		}
		out = append(out, b)
	}
	return out
}
