package recommend

import "hungrylah/models"

// Content-based scoring weights. The score is a plain sum with no
// normalization: cuisine overlap dominates, price proximity refines.
const (
	CuisineMatchScore  = 2.0
	ExactPriceScore    = 1.0
	AdjacentPriceScore = 0.5

	// MaxScore is cuisine match plus exact price match.
	MaxScore = CuisineMatchScore + ExactPriceScore
)

// Score computes the affinity between a restaurant and a taste profile.
// Pure: no I/O, deterministic, bounded to [0, MaxScore].
func Score(restaurant models.Restaurant, prefs *models.UserPreferences) float64 {
	score := 0.0

	if prefs.HasCuisine(restaurant.CuisineType) {
		score += CuisineMatchScore
	}

	band := prefs.PriceBand()
	diff := restaurant.PriceLevel - band
	if diff < 0 {
		diff = -diff
	}
	switch {
	case band == 0:
		// No usable price preference; the price term contributes nothing.
	case diff == 0:
		score += ExactPriceScore
	case diff == 1:
		score += AdjacentPriceScore
	}

	return score
}
