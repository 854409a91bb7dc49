package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"hungrylah/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFavouriteRepo struct {
	favourites map[string]models.Favourite
	err        error
}

func newFakeFavouriteRepo() *fakeFavouriteRepo {
	return &fakeFavouriteRepo{favourites: make(map[string]models.Favourite)}
}

func (f *fakeFavouriteRepo) Add(fav *models.Favourite) error {
	if f.err != nil {
		return f.err
	}
	key := models.FavouriteKey{UserID: fav.UserID, RestaurantID: fav.RestaurantID}
	fav.DocID = key.DocID()
	f.favourites[fav.DocID] = *fav
	return nil
}

func (f *fakeFavouriteRepo) Remove(key models.FavouriteKey) error {
	if f.err != nil {
		return f.err
	}
	delete(f.favourites, key.DocID())
	return nil
}

func (f *fakeFavouriteRepo) ListByUser(userID string) ([]models.Favourite, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Favourite
	for _, fav := range f.favourites {
		if fav.UserID == userID {
			out = append(out, fav)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RestaurantID < out[j].RestaurantID })
	return out, nil
}

func (f *fakeFavouriteRepo) ListIDs(userID string) (map[string]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := make(map[string]struct{})
	for _, fav := range f.favourites {
		if fav.UserID == userID {
			ids[fav.RestaurantID] = struct{}{}
		}
	}
	return ids, nil
}

type fakeInteractionRepo struct {
	dislikes map[string]models.Dislike
	err      error
}

func newFakeInteractionRepo() *fakeInteractionRepo {
	return &fakeInteractionRepo{dislikes: make(map[string]models.Dislike)}
}

func (f *fakeInteractionRepo) AddDislike(d *models.Dislike) error {
	if f.err != nil {
		return f.err
	}
	key := models.FavouriteKey{UserID: d.UserID, RestaurantID: d.RestaurantID}
	f.dislikes[key.DocID()] = *d
	return nil
}

func (f *fakeInteractionRepo) DislikedIDs(userID string) (map[string]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := make(map[string]struct{})
	for _, d := range f.dislikes {
		if d.UserID == userID {
			ids[d.RestaurantID] = struct{}{}
		}
	}
	return ids, nil
}

func newFavouriteRouter(h *FavouriteHandler, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	})
	r.POST("/favourites", h.AddFavouriteHandler)
	r.DELETE("/favourites/:restaurantId", h.RemoveFavouriteHandler)
	r.GET("/favourites", h.ListFavouritesHandler)
	r.GET("/favourites/ids", h.ListFavouriteIDsHandler)
	r.POST("/dislikes", h.AddDislikeHandler)
	r.GET("/dislikes/ids", h.ListDislikeIDsHandler)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddFavouriteIsIdempotent(t *testing.T) {
	repo := newFakeFavouriteRepo()
	h := NewFavouriteHandler(repo, newFakeInteractionRepo())
	r := newFavouriteRouter(h, "u1")

	payload := gin.H{"restaurantId": "r1", "name": "Nasi Lemak House"}
	w := doJSON(t, r, http.MethodPost, "/favourites", payload)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/favourites", payload)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Len(t, repo.favourites, 1)
	assert.Contains(t, repo.favourites, "u1_r1")
}

func TestRemoveFavouriteAbsentSucceeds(t *testing.T) {
	repo := newFakeFavouriteRepo()
	h := NewFavouriteHandler(repo, newFakeInteractionRepo())
	r := newFavouriteRouter(h, "u1")

	w := doJSON(t, r, http.MethodDelete, "/favourites/never-added", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListFavouriteIDsSorted(t *testing.T) {
	repo := newFakeFavouriteRepo()
	h := NewFavouriteHandler(repo, newFakeInteractionRepo())
	r := newFavouriteRouter(h, "u1")

	for _, id := range []string{"r3", "r1", "r2"} {
		w := doJSON(t, r, http.MethodPost, "/favourites", gin.H{"restaurantId": id})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/favourites/ids", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RestaurantIDs []string `json:"restaurantIds"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"r1", "r2", "r3"}, resp.RestaurantIDs)
}

func TestFavouritesScopedToUser(t *testing.T) {
	repo := newFakeFavouriteRepo()
	h := NewFavouriteHandler(repo, newFakeInteractionRepo())

	w := doJSON(t, newFavouriteRouter(h, "u1"), http.MethodPost, "/favourites", gin.H{"restaurantId": "r1"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, newFavouriteRouter(h, "u2"), http.MethodGet, "/favourites", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Favourites []models.Favourite `json:"favourites"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Favourites)
}

func TestAddFavouriteRequiresAuth(t *testing.T) {
	h := NewFavouriteHandler(newFakeFavouriteRepo(), newFakeInteractionRepo())
	r := newFavouriteRouter(h, "")

	w := doJSON(t, r, http.MethodPost, "/favourites", gin.H{"restaurantId": "r1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddFavouriteMissingRestaurantID(t *testing.T) {
	h := NewFavouriteHandler(newFakeFavouriteRepo(), newFakeInteractionRepo())
	r := newFavouriteRouter(h, "u1")

	w := doJSON(t, r, http.MethodPost, "/favourites", gin.H{"name": "no id"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDislikeRecordedAndListed(t *testing.T) {
	interactions := newFakeInteractionRepo()
	h := NewFavouriteHandler(newFakeFavouriteRepo(), interactions)
	r := newFavouriteRouter(h, "u1")

	w := doJSON(t, r, http.MethodPost, "/dislikes", gin.H{"restaurantId": "r9"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/dislikes/ids", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RestaurantIDs []string `json:"restaurantIds"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"r9"}, resp.RestaurantIDs)
}
