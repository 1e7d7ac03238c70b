package models

const (
	MinRating = 0.0
	MaxRating = 5.0

	// DefaultMaxRating hides the most highly rated places until the viewer
	// raises the threshold.
	DefaultMaxRating = 3.5
)

// RatingSteps are the thresholds offered by the max-rating selector.
var RatingSteps = []float64{2.0, 2.5, 3.0, 3.5, 4.0}

// IsRatingStep reports whether v is one of RatingSteps.
func IsRatingStep(v float64) bool {
	for _, s := range RatingSteps {
		if s == v {
			return true
		}
	}
	return false
}

type RatingStats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
