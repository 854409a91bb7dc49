package handlers

import (
	"net/http"
	"sort"

	favouriteRepo "hungrylah/database/repository/favourite"
	"hungrylah/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FavouriteHandler exposes favourite and dislike membership operations.
// These are the mutating calls the app wraps in its optimistic-mutation
// pattern, so they always report success or failure explicitly — a failed
// write is never masked.
type FavouriteHandler struct {
	Favourites   favouriteRepo.FavouriteRepository
	Interactions favouriteRepo.InteractionRepository
}

// NewFavouriteHandler builds the handler.
func NewFavouriteHandler(favourites favouriteRepo.FavouriteRepository, interactions favouriteRepo.InteractionRepository) *FavouriteHandler {
	return &FavouriteHandler{Favourites: favourites, Interactions: interactions}
}

type addFavouriteRequest struct {
	RestaurantID string `json:"restaurantId" binding:"required"`
	Name         string `json:"name"`
	CuisineType  string `json:"cuisineType"`
	PriceLevel   int    `json:"priceLevel"`
	PhotoURL     string `json:"photoURL"`
}

// AddFavouriteHandler upserts a favourite for the authenticated user.
func (h *FavouriteHandler) AddFavouriteHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req addFavouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	fav := &models.Favourite{
		UserID:       userID,
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		CuisineType:  req.CuisineType,
		PriceLevel:   req.PriceLevel,
		PhotoURL:     req.PhotoURL,
	}
	if err := h.Favourites.Add(fav); err != nil {
		logger.Error("Failed to add favourite",
			zap.String("userId", userID),
			zap.String("restaurantId", req.RestaurantID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favourite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "added", "id": fav.DocID})
}

// RemoveFavouriteHandler deletes the favourite; removing one that does not
// exist succeeds quietly.
func (h *FavouriteHandler) RemoveFavouriteHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	restaurantID := c.Param("restaurantId")
	if restaurantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing restaurantId"})
		return
	}

	key := models.FavouriteKey{UserID: userID, RestaurantID: restaurantID}
	if err := h.Favourites.Remove(key); err != nil {
		logger.Error("Failed to remove favourite",
			zap.String("userId", userID),
			zap.String("restaurantId", restaurantID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favourite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// ListFavouritesHandler returns the user's full favourite records.
func (h *FavouriteHandler) ListFavouritesHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	favs, err := h.Favourites.ListByUser(userID)
	if err != nil {
		logger.Error("Failed to list favourites", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list favourites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favourites": favs})
}

// ListFavouriteIDsHandler returns only the favourited restaurant ids, for
// cheap membership checks (e.g. greying out an already-favourited card).
func (h *FavouriteHandler) ListFavouriteIDsHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ids, err := h.Favourites.ListIDs(userID)
	if err != nil {
		logger.Error("Failed to list favourite ids", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list favourite ids"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurantIds": sortedIDs(ids)})
}

type addDislikeRequest struct {
	RestaurantID string `json:"restaurantId" binding:"required"`
}

// AddDislikeHandler records a dislike. Dislikes are one-way: there is no
// corresponding remove endpoint.
func (h *FavouriteHandler) AddDislikeHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req addDislikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	dislike := &models.Dislike{UserID: userID, RestaurantID: req.RestaurantID}
	if err := h.Interactions.AddDislike(dislike); err != nil {
		logger.Error("Failed to add dislike",
			zap.String("userId", userID),
			zap.String("restaurantId", req.RestaurantID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add dislike"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// ListDislikeIDsHandler returns the restaurant ids the user has disliked.
func (h *FavouriteHandler) ListDislikeIDsHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ids, err := h.Interactions.DislikedIDs(userID)
	if err != nil {
		logger.Error("Failed to list dislikes", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list dislikes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurantIds": sortedIDs(ids)})
}

func sortedIDs(ids map[string]struct{}) []string {
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
