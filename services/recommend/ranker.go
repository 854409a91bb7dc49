package recommend

import (
	"fmt"
	"sort"

	favouriteRepo "hungrylah/database/repository/favourite"
	preferenceRepo "hungrylah/database/repository/preference"
	"hungrylah/models"
	"hungrylah/services/datacache"

	"go.uber.org/zap"
)

// DefaultRanker orchestrates the preference store, the cached catalog, and
// the scoring function into a sorted recommendation list.
type DefaultRanker struct {
	PrefRepo     preferenceRepo.PreferenceRepository
	Interactions favouriteRepo.InteractionRepository
	Catalog      *datacache.DataCache
	Logger       *zap.Logger
}

// Rank scores every catalog entry against the user's preferences and
// returns the matches in descending score order.
//
// A user with no preference document gets an empty list, not an error.
// Entries scoring zero are dropped: only restaurants with at least one
// matching signal are surfaced. Restaurants the user has disliked are
// excluded outright. The sort is stable so equal-score entries keep catalog
// order between calls; the UI relies on card order not jumping around
// within a session.
func (s *DefaultRanker) Rank(userID, filter string) ([]models.ScoredRestaurant, error) {
	prefs, err := s.PrefRepo.Fetch(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preferences for user %s: %w", userID, err)
	}
	if prefs == nil {
		s.Logger.Debug("no preferences configured, returning empty recommendations",
			zap.String("userId", userID))
		return []models.ScoredRestaurant{}, nil
	}

	disliked, err := s.Interactions.DislikedIDs(userID)
	if err != nil {
		// Exclusion is best-effort; a failed dislike read must not take
		// recommendations down with it.
		s.Logger.Warn("failed to load dislikes, ranking without exclusions",
			zap.String("userId", userID), zap.Error(err))
		disliked = nil
	}

	catalog := s.Catalog.GetRestaurants()

	scored := make([]models.ScoredRestaurant, 0, len(catalog))
	for _, restaurant := range catalog {
		if _, skip := disliked[restaurant.ID]; skip {
			continue
		}
		score := Score(restaurant, prefs)
		if score == 0 {
			continue
		}
		if filter == models.FilterHighlyRated {
			if restaurant.Rating == nil || *restaurant.Rating < models.HighlyRatedThreshold {
				continue
			}
		}
		scored = append(scored, models.ScoredRestaurant{Restaurant: restaurant, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	s.Logger.Debug("ranked catalog",
		zap.String("userId", userID),
		zap.String("filter", filter),
		zap.Int("catalogSize", len(catalog)),
		zap.Int("matches", len(scored)))

	return scored, nil
}
