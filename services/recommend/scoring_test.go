package recommend

import (
	"fmt"
	"testing"

	"hungrylah/models"

	"github.com/stretchr/testify/assert"
)

func prefs(cuisines []string, priceRange string) *models.UserPreferences {
	return &models.UserPreferences{
		UserID:     "u1",
		Cuisines:   cuisines,
		PriceRange: priceRange,
	}
}

func TestScoreTable(t *testing.T) {
	tests := []struct {
		name       string
		restaurant models.Restaurant
		prefs      *models.UserPreferences
		want       float64
	}{
		{
			name:       "cuisine and exact price",
			restaurant: models.Restaurant{CuisineType: "Italian", PriceLevel: 2},
			prefs:      prefs([]string{"Italian"}, "2"),
			want:       3.0,
		},
		{
			name:       "cuisine and adjacent price",
			restaurant: models.Restaurant{CuisineType: "Italian", PriceLevel: 3},
			prefs:      prefs([]string{"Italian"}, "2"),
			want:       2.5,
		},
		{
			name:       "cuisine only, price two bands off",
			restaurant: models.Restaurant{CuisineType: "Italian", PriceLevel: 4},
			prefs:      prefs([]string{"Italian"}, "2"),
			want:       2.0,
		},
		{
			name:       "exact price only",
			restaurant: models.Restaurant{CuisineType: "Thai", PriceLevel: 2},
			prefs:      prefs([]string{"Italian"}, "2"),
			want:       1.0,
		},
		{
			name:       "adjacent price only",
			restaurant: models.Restaurant{CuisineType: "Thai", PriceLevel: 1},
			prefs:      prefs([]string{"Italian"}, "2"),
			want:       0.5,
		},
		{
			name:       "no signal at all",
			restaurant: models.Restaurant{CuisineType: "Thai", PriceLevel: 4},
			prefs:      prefs([]string{"Italian"}, "2"),
			want:       0.0,
		},
		{
			name:       "malformed price range drops the price term",
			restaurant: models.Restaurant{CuisineType: "Italian", PriceLevel: 2},
			prefs:      prefs([]string{"Italian"}, "cheap"),
			want:       2.0,
		},
		{
			name:       "empty preferences",
			restaurant: models.Restaurant{CuisineType: "Italian", PriceLevel: 2},
			prefs:      prefs(nil, ""),
			want:       0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.restaurant, tt.prefs))
		})
	}
}

// Score is bounded to [0, MaxScore] for every cuisine/price combination.
func TestScoreBounds(t *testing.T) {
	cuisines := []string{"Italian", "Thai"}
	for _, cuisine := range cuisines {
		for priceLevel := 1; priceLevel <= 4; priceLevel++ {
			for band := 1; band <= 4; band++ {
				r := models.Restaurant{CuisineType: cuisine, PriceLevel: priceLevel}
				p := prefs([]string{"Italian"}, fmt.Sprintf("%d", band))
				got := Score(r, p)

				assert.GreaterOrEqual(t, got, 0.0)
				assert.LessOrEqual(t, got, MaxScore)

				// The score decomposes exactly into its two terms.
				cuisineTerm := 0.0
				if cuisine == "Italian" {
					cuisineTerm = CuisineMatchScore
				}
				priceTerm := 0.0
				diff := priceLevel - band
				if diff < 0 {
					diff = -diff
				}
				if diff == 0 {
					priceTerm = ExactPriceScore
				} else if diff == 1 {
					priceTerm = AdjacentPriceScore
				}
				assert.Equal(t, cuisineTerm+priceTerm, got)
			}
		}
	}
}
