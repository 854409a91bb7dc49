package datacache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"hungrylah/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --------------------------------------------------
// Fake repositories
// --------------------------------------------------

type fakeRestaurantRepo struct {
	mu          sync.Mutex
	restaurants []models.Restaurant
	err         error
	calls       int
}

func (f *fakeRestaurantRepo) GetAll() ([]models.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.restaurants, nil
}

func (f *fakeRestaurantRepo) GetByID(id string) (*models.Restaurant, error) {
	for i := range f.restaurants {
		if f.restaurants[i].ID == id {
			return &f.restaurants[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRestaurantRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeReviewRepo struct {
	reviews []models.Review
	err     error
	calls   int
}

func (f *fakeReviewRepo) Create(review *models.Review) error         { return nil }
func (f *fakeReviewRepo) GetByID(id string) (*models.Review, error)  { return nil, nil }
func (f *fakeReviewRepo) GetByRestaurant(id string) ([]models.Review, error) {
	return nil, nil
}
func (f *fakeReviewRepo) ApplyHelpfulVote(reviewID, userID string, vote bool) error {
	return nil
}

func (f *fakeReviewRepo) GetRecent(limit int) ([]models.Review, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.reviews, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
	err   error
	calls int
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

func (f *fakeUserRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestCache(rr *fakeRestaurantRepo, vr *fakeReviewRepo, ur *fakeUserRepo, ttl time.Duration, maxUsers int) *DataCache {
	if rr == nil {
		rr = &fakeRestaurantRepo{}
	}
	if vr == nil {
		vr = &fakeReviewRepo{}
	}
	if ur == nil {
		ur = &fakeUserRepo{users: map[string]*models.User{}}
	}
	return New(Deps{Restaurants: rr, Reviews: vr, Users: ur}, ttl, maxUsers, zap.NewNop())
}

func sampleRestaurants(n int) []models.Restaurant {
	out := make([]models.Restaurant, n)
	for i := range out {
		out[i] = models.Restaurant{ID: fmt.Sprintf("r%d", i), Name: fmt.Sprintf("Place %d", i)}
	}
	return out
}

// --------------------------------------------------
// Catalog list cache
// --------------------------------------------------

func TestGetRestaurantsServesFromCacheWithinTTL(t *testing.T) {
	rr := &fakeRestaurantRepo{restaurants: sampleRestaurants(3)}
	cache := newTestCache(rr, nil, nil, 5*time.Minute, 100)

	first := cache.GetRestaurants()
	second := cache.GetRestaurants()

	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, rr.callCount())
}

func TestGetRestaurantsRefetchesAfterExpiry(t *testing.T) {
	rr := &fakeRestaurantRepo{restaurants: sampleRestaurants(2)}
	cache := newTestCache(rr, nil, nil, 10*time.Millisecond, 100)

	cache.GetRestaurants()
	time.Sleep(20 * time.Millisecond)
	cache.GetRestaurants()

	assert.Equal(t, 2, rr.callCount())
}

func TestGetRestaurantsStaleOnError(t *testing.T) {
	rr := &fakeRestaurantRepo{restaurants: sampleRestaurants(3)}
	cache := newTestCache(rr, nil, nil, 10*time.Millisecond, 100)

	populated := cache.GetRestaurants()
	require.Len(t, populated, 3)

	// Expire the entry, then break the backend.
	time.Sleep(20 * time.Millisecond)
	rr.mu.Lock()
	rr.err = errors.New("mongo down")
	rr.mu.Unlock()

	stale := cache.GetRestaurants()
	assert.Equal(t, populated, stale)
}

func TestGetRestaurantsEmptyOnErrorWithNoCache(t *testing.T) {
	rr := &fakeRestaurantRepo{err: errors.New("mongo down")}
	cache := newTestCache(rr, nil, nil, 5*time.Minute, 100)

	got := cache.GetRestaurants()
	assert.Empty(t, got)
}

func TestClearResetsTTLClock(t *testing.T) {
	rr := &fakeRestaurantRepo{restaurants: sampleRestaurants(1)}
	cache := newTestCache(rr, nil, nil, 5*time.Minute, 100)

	cache.GetRestaurants()
	cache.Clear("restaurants")
	cache.GetRestaurants()

	assert.Equal(t, 2, rr.callCount())
}

func TestClearAllDropsEveryEntity(t *testing.T) {
	rr := &fakeRestaurantRepo{restaurants: sampleRestaurants(2)}
	vr := &fakeReviewRepo{reviews: []models.Review{{ID: "rev1"}}}
	ur := &fakeUserRepo{users: map[string]*models.User{"u1": {ID: "u1"}}}
	cache := newTestCache(rr, vr, ur, 5*time.Minute, 100)

	cache.GetRestaurants()
	cache.GetRecentReviews()
	cache.GetUser("u1")
	cache.Clear("all")

	stats := cache.GetStats()
	assert.Zero(t, stats.Restaurants)
	assert.Zero(t, stats.Reviews)
	assert.Zero(t, stats.Users)
}

// --------------------------------------------------
// Per-user entity cache
// --------------------------------------------------

func TestGetUserCachesLookups(t *testing.T) {
	ur := &fakeUserRepo{users: map[string]*models.User{"u1": {ID: "u1", DisplayName: "Mei"}}}
	cache := newTestCache(nil, nil, ur, 5*time.Minute, 100)

	first := cache.GetUser("u1")
	second := cache.GetUser("u1")

	require.NotNil(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, ur.callCount())
}

func TestGetUserNotFoundIsNil(t *testing.T) {
	cache := newTestCache(nil, nil, &fakeUserRepo{users: map[string]*models.User{}}, 5*time.Minute, 100)
	assert.Nil(t, cache.GetUser("ghost"))
}

func TestUserCacheEvictsOldestHalfAtCeiling(t *testing.T) {
	users := map[string]*models.User{}
	for i := 0; i < 101; i++ {
		id := fmt.Sprintf("u%03d", i)
		users[id] = &models.User{ID: id}
	}
	ur := &fakeUserRepo{users: users}
	cache := newTestCache(nil, nil, ur, 5*time.Minute, 100)

	for i := 0; i < 101; i++ {
		cache.GetUser(fmt.Sprintf("u%03d", i))
	}

	// Crossing the ceiling keeps only the most recent 50 entries.
	assert.Equal(t, 50, cache.GetStats().Users)

	// The earliest insertions were evicted, the latest survived.
	before := ur.callCount()
	cache.GetUser("u100")
	assert.Equal(t, before, ur.callCount())
	cache.GetUser("u000")
	assert.Equal(t, before+1, ur.callCount())
}

// --------------------------------------------------
// Batched lookups
// --------------------------------------------------

func TestGetUsersDeduplicatesInput(t *testing.T) {
	ur := &fakeUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1"},
		"u2": {ID: "u2"},
	}}
	cache := newTestCache(nil, nil, ur, 5*time.Minute, 100)

	got := cache.GetUsers([]string{"u1", "u2", "u1", "u2", "u1"})

	assert.Len(t, got, 2)
	assert.Equal(t, 2, ur.callCount())
}

func TestGetUsersMergesCachedAndFetched(t *testing.T) {
	ur := &fakeUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1"},
		"u2": {ID: "u2"},
		"u3": {ID: "u3"},
	}}
	cache := newTestCache(nil, nil, ur, 5*time.Minute, 100)

	cache.GetUser("u1")
	got := cache.GetUsers([]string{"u1", "u2", "u3"})

	assert.Len(t, got, 3)
	// u1 came from cache; only u2 and u3 hit the repository.
	assert.Equal(t, 3, ur.callCount())
}

func TestGetUsersSkipsUnresolvableIDs(t *testing.T) {
	ur := &fakeUserRepo{users: map[string]*models.User{"u1": {ID: "u1"}}}
	cache := newTestCache(nil, nil, ur, 5*time.Minute, 100)

	got := cache.GetUsers([]string{"u1", "ghost", ""})
	assert.Len(t, got, 1)
}

// --------------------------------------------------
// Reviews
// --------------------------------------------------

func TestGetRecentReviewsStaleOnError(t *testing.T) {
	vr := &fakeReviewRepo{reviews: []models.Review{{ID: "rev1"}, {ID: "rev2"}}}
	cache := newTestCache(nil, vr, nil, 10*time.Millisecond, 100)

	populated := cache.GetRecentReviews()
	require.Len(t, populated, 2)

	time.Sleep(20 * time.Millisecond)
	vr.err = errors.New("mongo down")

	assert.Equal(t, populated, cache.GetRecentReviews())
}
