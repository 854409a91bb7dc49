package recommend

import (
	"context"
	"sync"
	"time"

	"hungrylah/models"

	"go.uber.org/zap"
)

// cacheKey identifies one cached ranking: a (user, filter) pair with
// structural equality rather than a concatenated string.
type cacheKey struct {
	UserID string
	Filter string
}

// cacheEntry is one cached ranking result. Entries are replaced wholesale
// on refresh, never mutated in place.
type cacheEntry struct {
	data      []models.Restaurant
	timestamp time.Time
}

// RecommendationCache caches remote ranking results per (user, filter) with
// bounded retries, linear backoff, and stale-on-error fallback. Reads favor
// availability over freshness: an error only surfaces when retries are
// exhausted and nothing — however old — is cached for the key.
type RecommendationCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry

	client     RankingClient
	ttl        time.Duration
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

// NewRecommendationCache builds the cache. maxRetries counts retries after
// the first attempt; the wait before retry n is n × retryDelay.
func NewRecommendationCache(client RankingClient, ttl time.Duration, maxRetries int, retryDelay time.Duration, logger *zap.Logger) *RecommendationCache {
	return &RecommendationCache{
		entries:    make(map[cacheKey]cacheEntry),
		client:     client,
		ttl:        ttl,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// GetRecommendations returns the ranked list for (userID, filter), served
// from cache while fresh. On miss or expiry it calls the backend with the
// retry policy; if every attempt fails and an expired entry exists, the
// expired entry is returned instead of the error.
func (c *RecommendationCache) GetRecommendations(ctx context.Context, userID, filter string) ([]models.Restaurant, error) {
	key := cacheKey{UserID: userID, Filter: filter}

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()

	if ok && time.Since(entry.timestamp) < c.ttl {
		c.logger.Debug("recommendation cache hit",
			zap.String("userId", userID), zap.String("filter", filter))
		return entry.data, nil
	}

	c.logger.Debug("recommendation cache miss",
		zap.String("userId", userID), zap.String("filter", filter))

	data, err := c.fetchWithRetry(ctx, userID, filter)
	if err != nil {
		if ok {
			c.logger.Warn("stale fallback used for recommendations",
				zap.String("userId", userID),
				zap.String("filter", filter),
				zap.Error(err))
			return entry.data, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{data: data, timestamp: time.Now()}
	c.mu.Unlock()

	c.logger.Debug("cached recommendations",
		zap.String("userId", userID),
		zap.String("filter", filter),
		zap.Int("count", len(data)))
	return data, nil
}

// fetchWithRetry runs the remote call up to 1+maxRetries times with a
// linearly growing wait between attempts.
func (c *RecommendationCache) fetchWithRetry(ctx context.Context, userID, filter string) ([]models.Restaurant, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Info("retrying ranking request",
				zap.String("userId", userID),
				zap.String("filter", filter),
				zap.Int("attempt", attempt),
				zap.Int("maxRetries", c.maxRetries),
				zap.Error(lastErr))
			select {
			case <-time.After(time.Duration(attempt) * c.retryDelay):
			case <-ctx.Done():
				// Keep the failure that put us here; a canceled wait is
				// not a backend timeout.
				if lastErr != nil {
					return nil, lastErr
				}
				return nil, ctx.Err()
			}
		}

		data, err := c.client.FetchRecommendations(ctx, userID, filter)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// PreloadRecommendations warms the cache for the common filters. Each
// filter runs independently; one failing does not abort the others, and no
// failure is surfaced — preload is best-effort by definition.
func (c *RecommendationCache) PreloadRecommendations(ctx context.Context, userID string) {
	if userID == "" {
		return
	}

	var wg sync.WaitGroup
	for _, filter := range models.PreloadFilters {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()
			if _, err := c.GetRecommendations(ctx, userID, f); err != nil {
				c.logger.Warn("preload failed for filter",
					zap.String("userId", userID),
					zap.String("filter", f),
					zap.Error(err))
			}
		}(filter)
	}
	wg.Wait()

	c.logger.Info("recommendation preload complete", zap.String("userId", userID))
}

// Warmup preloads after probing the backend, skipping the attempt entirely
// when the backend is known to be down to avoid a doomed retry storm.
func (c *RecommendationCache) Warmup(ctx context.Context, userID string) {
	if userID == "" {
		return
	}
	if !c.client.Healthy(ctx) {
		c.logger.Info("ranking backend unhealthy, skipping warmup",
			zap.String("userId", userID))
		return
	}
	c.PreloadRecommendations(ctx, userID)
}

// ClearUser drops every cached filter for the user. Must be called whenever
// the user's preferences change: a stale ranking after a preference edit is
// a correctness bug, not a staleness inconvenience.
func (c *RecommendationCache) ClearUser(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if key.UserID == userID {
			delete(c.entries, key)
		}
	}
	c.logger.Info("cleared recommendation cache for user", zap.String("userId", userID))
}

// ClearAll drops every cached ranking.
func (c *RecommendationCache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[cacheKey]cacheEntry)
	c.logger.Info("cleared all recommendation cache")
}

// Stats is a point-in-time snapshot of cache occupancy.
type Stats struct {
	Total                int `json:"total"`
	Valid                int `json:"valid"`
	Expired              int `json:"expired"`
	TotalRecommendations int `json:"totalRecommendations"`
}

// GetStats reports occupancy and freshness counts.
func (c *RecommendationCache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{Total: len(c.entries)}
	now := time.Now()
	for _, entry := range c.entries {
		if now.Sub(entry.timestamp) < c.ttl {
			stats.Valid++
			stats.TotalRecommendations += len(entry.data)
		} else {
			stats.Expired++
		}
	}
	return stats
}
