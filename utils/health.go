package utils

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo          bool      `json:"mongo"`
	RankingBackend bool      `json:"rankingBackend"`
	CheckedAt      time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory
// state. rankingProbe is a lightweight reachability check against the
// ranking backend; warm-up logic consults the snapshot to skip doomed runs.
func StartHealthMonitor(mongoClient *mongo.Client, rankingProbe func(context.Context) bool) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			mongoHealthy := mongoClient.Ping(ctx, nil) == nil
			rankingHealthy := rankingProbe(ctx)

			mu.Lock()
			currentHealth = HealthStatus{
				Mongo:          mongoHealthy,
				RankingBackend: rankingHealthy,
				CheckedAt:      time.Now(),
			}
			mu.Unlock()
		}
	}()
}
