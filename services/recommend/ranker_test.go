package recommend

import (
	"errors"
	"testing"
	"time"

	preferenceRepo "hungrylah/database/repository/preference"
	"hungrylah/models"
	"hungrylah/services/datacache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --------------------------------------------------
// Fakes
// --------------------------------------------------

type fakePrefRepo struct {
	prefs map[string]*models.UserPreferences
	err   error
}

func (f *fakePrefRepo) Fetch(userID string) (*models.UserPreferences, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.prefs[userID], nil
}

func (f *fakePrefRepo) Save(userID string, update preferenceRepo.PreferenceUpdate) error {
	return nil
}

type fakeInteractionRepo struct {
	disliked map[string]struct{}
	err      error
}

func (f *fakeInteractionRepo) AddDislike(d *models.Dislike) error { return nil }

func (f *fakeInteractionRepo) DislikedIDs(userID string) (map[string]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.disliked, nil
}

type staticCatalogRepo struct {
	restaurants []models.Restaurant
}

func (s *staticCatalogRepo) GetAll() ([]models.Restaurant, error) { return s.restaurants, nil }
func (s *staticCatalogRepo) GetByID(id string) (*models.Restaurant, error) {
	return nil, nil
}

type noopReviewRepo struct{}

func (noopReviewRepo) Create(review *models.Review) error                        { return nil }
func (noopReviewRepo) GetByID(id string) (*models.Review, error)                 { return nil, nil }
func (noopReviewRepo) GetRecent(limit int) ([]models.Review, error)              { return nil, nil }
func (noopReviewRepo) GetByRestaurant(id string) ([]models.Review, error)        { return nil, nil }
func (noopReviewRepo) ApplyHelpfulVote(reviewID, userID string, vote bool) error { return nil }

type noopUserRepo struct{}

func (noopUserRepo) GetByID(id string) (*models.User, error) { return nil, nil }

func rating(v float64) *float64 { return &v }

func newRanker(catalog []models.Restaurant, pr *fakePrefRepo, ir *fakeInteractionRepo) *DefaultRanker {
	if pr == nil {
		pr = &fakePrefRepo{prefs: map[string]*models.UserPreferences{}}
	}
	if ir == nil {
		ir = &fakeInteractionRepo{}
	}
	dc := datacache.New(datacache.Deps{
		Restaurants: &staticCatalogRepo{restaurants: catalog},
		Reviews:     noopReviewRepo{},
		Users:       noopUserRepo{},
	}, 5*time.Minute, 100, zap.NewNop())

	return &DefaultRanker{
		PrefRepo:     pr,
		Interactions: ir,
		Catalog:      dc,
		Logger:       zap.NewNop(),
	}
}

func italianPrefs() *fakePrefRepo {
	return &fakePrefRepo{prefs: map[string]*models.UserPreferences{
		"u1": {UserID: "u1", Cuisines: []string{"Italian"}, PriceRange: "2"},
	}}
}

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestRankEmptyWithoutPreferences(t *testing.T) {
	ranker := newRanker(sampleCatalog(), &fakePrefRepo{prefs: map[string]*models.UserPreferences{}}, nil)

	got, err := ranker.Rank("stranger", models.FilterAll)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func sampleCatalog() []models.Restaurant {
	return []models.Restaurant{
		{ID: "r1", Name: "Trattoria", CuisineType: "Italian", PriceLevel: 2, Rating: rating(4.7)},
		{ID: "r2", Name: "Thai Basil", CuisineType: "Thai", PriceLevel: 4, Rating: rating(4.8)},
		{ID: "r3", Name: "Osteria", CuisineType: "Italian", PriceLevel: 3, Rating: rating(4.3)},
		{ID: "r4", Name: "Noodle Bar", CuisineType: "Chinese", PriceLevel: 2, Rating: nil},
	}
}

func TestRankScoresAndOrders(t *testing.T) {
	ranker := newRanker(sampleCatalog(), italianPrefs(), nil)

	got, err := ranker.Rank("u1", models.FilterAll)
	require.NoError(t, err)

	// r2 (Thai, price 4) scores zero and is dropped.
	require.Len(t, got, 3)
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, 3.0, got[0].Score)
	assert.Equal(t, "r3", got[1].ID)
	assert.Equal(t, 2.5, got[1].Score)
	assert.Equal(t, "r4", got[2].ID)
	assert.Equal(t, 1.0, got[2].Score)
}

func TestRankNeverReturnsZeroScores(t *testing.T) {
	ranker := newRanker(sampleCatalog(), italianPrefs(), nil)

	got, err := ranker.Rank("u1", models.FilterAll)
	require.NoError(t, err)
	for _, sr := range got {
		assert.Greater(t, sr.Score, 0.0)
	}
}

func TestRankHighlyRatedThreshold(t *testing.T) {
	ranker := newRanker(sampleCatalog(), italianPrefs(), nil)

	got, err := ranker.Rank("u1", models.FilterHighlyRated)
	require.NoError(t, err)

	// r3 scores 2.5 but its 4.3 rating is below the 4.5 bar; r4 has no
	// rating at all. Only r1 passes.
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
}

func TestRankStableOrderAcrossCalls(t *testing.T) {
	// Two restaurants with identical scores keep catalog order.
	catalog := []models.Restaurant{
		{ID: "a", CuisineType: "Italian", PriceLevel: 2},
		{ID: "b", CuisineType: "Italian", PriceLevel: 2},
		{ID: "c", CuisineType: "Italian", PriceLevel: 2},
	}
	ranker := newRanker(catalog, italianPrefs(), nil)

	first, err := ranker.Rank("u1", models.FilterAll)
	require.NoError(t, err)
	second, err := ranker.Rank("u1", models.FilterAll)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "a", first[0].ID)
	assert.Equal(t, "b", first[1].ID)
	assert.Equal(t, "c", first[2].ID)
}

func TestRankExcludesDislikedRestaurants(t *testing.T) {
	ir := &fakeInteractionRepo{disliked: map[string]struct{}{"r1": {}}}
	ranker := newRanker(sampleCatalog(), italianPrefs(), ir)

	got, err := ranker.Rank("u1", models.FilterAll)
	require.NoError(t, err)

	for _, sr := range got {
		assert.NotEqual(t, "r1", sr.ID)
	}
}

func TestRankSurvivesDislikeReadFailure(t *testing.T) {
	ir := &fakeInteractionRepo{err: errors.New("mongo down")}
	ranker := newRanker(sampleCatalog(), italianPrefs(), ir)

	got, err := ranker.Rank("u1", models.FilterAll)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestRankPropagatesPreferenceReadFailure(t *testing.T) {
	pr := &fakePrefRepo{err: errors.New("mongo down")}
	ranker := newRanker(sampleCatalog(), pr, nil)

	_, err := ranker.Rank("u1", models.FilterAll)
	assert.Error(t, err)
}
