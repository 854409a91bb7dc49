package recommend

import (
	"context"

	"hungrylah/models"
)

// Ranker produces an ordered, filtered recommendation list for one user by
// scoring the whole catalog against the user's stored preferences.
type Ranker interface {
	Rank(userID, filter string) ([]models.ScoredRestaurant, error)
}

// RankingClient is the remote ranking call. The HTTP implementation talks
// to GET /recommendations/{userId}?filter=...; tests substitute fakes.
type RankingClient interface {
	// FetchRecommendations performs one ranking request. Failures come back
	// as *RankingError so the cache can categorize them.
	FetchRecommendations(ctx context.Context, userID, filter string) ([]models.Restaurant, error)
	// Healthy is a lightweight reachability probe, used to skip warm-up
	// attempts while the backend is known to be down.
	Healthy(ctx context.Context) bool
}
