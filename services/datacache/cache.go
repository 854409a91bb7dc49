package datacache

import (
	"sync"
	"time"

	restaurantRepo "hungrylah/database/repository/restaurant"
	reviewRepo "hungrylah/database/repository/review"
	userRepo "hungrylah/database/repository/user"
	"hungrylah/models"

	"go.uber.org/zap"
)

// DataCache is the read-through cache in front of the document store. It
// holds the restaurant catalog, recent reviews, and a bounded per-user map,
// each with a fixed TTL, and serves stale data when a refresh fails rather
// than propagating the error.
//
// The cache is strictly in-process and mutex-guarded. Two concurrent misses
// for the same entity may both fetch; whichever write completes last wins
// the slot. That race is accepted: the reads are idempotent and deduping
// in-flight fetches is not worth the machinery.
type DataCache struct {
	restaurants *listCache[models.Restaurant]
	reviews     *listCache[models.Review]
	users       *entityCache[*models.User]

	restaurantRepo restaurantRepo.RestaurantRepository
	reviewRepo     reviewRepo.ReviewRepository
	userRepo       userRepo.UserRepository

	reviewLimit int
	logger      *zap.Logger
}

// Deps bundles the repositories the cache reads through to.
type Deps struct {
	Restaurants restaurantRepo.RestaurantRepository
	Reviews     reviewRepo.ReviewRepository
	Users       userRepo.UserRepository
}

// defaultReviewLimit is how many recent reviews the home feed shows.
const defaultReviewLimit = 10

// New builds a DataCache. ttl bounds the freshness of the catalog and
// review lists; maxUsers caps the per-user entity map.
func New(deps Deps, ttl time.Duration, maxUsers int, logger *zap.Logger) *DataCache {
	return &DataCache{
		restaurants:    newListCache[models.Restaurant](ttl),
		reviews:        newListCache[models.Review](ttl),
		users:          newEntityCache[*models.User](maxUsers),
		restaurantRepo: deps.Restaurants,
		reviewRepo:     deps.Reviews,
		userRepo:       deps.Users,
		reviewLimit:    defaultReviewLimit,
		logger:         logger,
	}
}

// GetRestaurants returns the catalog, served from cache while fresh. On a
// failed refresh any previously cached list (even expired) is returned;
// with nothing cached the result is an empty list, never an error.
func (c *DataCache) GetRestaurants() []models.Restaurant {
	if data, ok := c.restaurants.getFresh(); ok {
		c.logger.Debug("cache hit", zap.String("entity", "restaurants"))
		return data
	}

	c.logger.Debug("cache miss", zap.String("entity", "restaurants"))
	fresh, err := c.restaurantRepo.GetAll()
	if err != nil {
		if stale, ok := c.restaurants.getAny(); ok {
			c.logger.Warn("stale fallback used",
				zap.String("entity", "restaurants"), zap.Error(err))
			return stale
		}
		c.logger.Error("catalog fetch failed with empty cache", zap.Error(err))
		return []models.Restaurant{}
	}

	c.restaurants.set(fresh)
	return fresh
}

// GetRecentReviews returns the latest reviews with the same freshness and
// fallback behavior as GetRestaurants.
func (c *DataCache) GetRecentReviews() []models.Review {
	if data, ok := c.reviews.getFresh(); ok {
		c.logger.Debug("cache hit", zap.String("entity", "reviews"))
		return data
	}

	c.logger.Debug("cache miss", zap.String("entity", "reviews"))
	fresh, err := c.reviewRepo.GetRecent(c.reviewLimit)
	if err != nil {
		if stale, ok := c.reviews.getAny(); ok {
			c.logger.Warn("stale fallback used",
				zap.String("entity", "reviews"), zap.Error(err))
			return stale
		}
		c.logger.Error("review fetch failed with empty cache", zap.Error(err))
		return []models.Review{}
	}

	c.reviews.set(fresh)
	return fresh
}

// GetUser returns the user record for id, or nil when the user does not
// exist or the lookup fails. A failed lookup is logged, not surfaced; for
// display-name joins a missing name is tolerable.
func (c *DataCache) GetUser(userID string) *models.User {
	if userID == "" {
		return nil
	}
	if user, ok := c.users.get(userID); ok {
		c.logger.Debug("cache hit", zap.String("entity", "user"), zap.String("userId", userID))
		return user
	}

	user, err := c.userRepo.GetByID(userID)
	if err != nil {
		c.logger.Warn("user fetch failed", zap.String("userId", userID), zap.Error(err))
		return nil
	}
	if user == nil {
		return nil
	}
	c.users.put(userID, user)
	return user
}

// GetUsers resolves a batch of user ids, deduplicating the input, serving
// what it can from cache, and fetching the uncached remainder concurrently.
// Unresolvable ids are simply absent from the result.
func (c *DataCache) GetUsers(userIDs []string) []*models.User {
	if len(userIDs) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(userIDs))
	var unique []string
	for _, id := range userIDs {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	var results []*models.User
	var uncached []string
	for _, id := range unique {
		if user, ok := c.users.get(id); ok {
			results = append(results, user)
		} else {
			uncached = append(uncached, id)
		}
	}

	if len(uncached) == 0 {
		return results
	}

	var wg sync.WaitGroup
	var resMu sync.Mutex
	for _, id := range uncached {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			user, err := c.userRepo.GetByID(userID)
			if err != nil {
				c.logger.Warn("user fetch failed", zap.String("userId", userID), zap.Error(err))
				return
			}
			if user == nil {
				return
			}
			c.users.put(userID, user)
			resMu.Lock()
			results = append(results, user)
			resMu.Unlock()
		}(id)
	}
	wg.Wait()

	return results
}

// Clear drops the named entity cache ("restaurants", "reviews", "users")
// or everything ("all") and resets the TTL clock. In-flight fetches are not
// blocked; a late completion simply repopulates the slot.
func (c *DataCache) Clear(entityType string) {
	switch entityType {
	case "restaurants":
		c.restaurants.clear()
	case "reviews":
		c.reviews.clear()
	case "users":
		c.users.clear()
	case "all":
		c.restaurants.clear()
		c.reviews.clear()
		c.users.clear()
	default:
		c.logger.Warn("unknown cache entity type", zap.String("entityType", entityType))
		return
	}
	c.logger.Info("cache cleared", zap.String("entityType", entityType))
}

// Preload fires the catalog and review fetches in the background. This is
// best-effort warm-up: failures are logged by the getters, never raised.
func (c *DataCache) Preload() {
	go func() {
		c.GetRestaurants()
		c.GetRecentReviews()
		c.logger.Info("data cache preload complete")
	}()
}

// Stats reports current cache occupancy, for the health endpoint.
type Stats struct {
	Restaurants int `json:"restaurants"`
	Reviews     int `json:"reviews"`
	Users       int `json:"users"`
}

// GetStats returns a point-in-time occupancy snapshot.
func (c *DataCache) GetStats() Stats {
	return Stats{
		Restaurants: c.restaurants.len(),
		Reviews:     c.reviews.len(),
		Users:       c.users.len(),
	}
}
