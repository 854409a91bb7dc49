package handlers

import (
	"net/http"

	"hungrylah/cron"
	preferenceRepo "hungrylah/database/repository/preference"
	"hungrylah/services/recommend"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PreferenceHandler reads and writes the per-user taste profile. Saving
// preferences invalidates the user's cached rankings: serving a ranking
// computed against old preferences is a correctness bug, not staleness.
type PreferenceHandler struct {
	Repo     preferenceRepo.PreferenceRepository
	RecCache *recommend.RecommendationCache
	Warmup   *cron.WarmupEnqueuer
}

// NewPreferenceHandler builds the handler.
func NewPreferenceHandler(repo preferenceRepo.PreferenceRepository, recCache *recommend.RecommendationCache, warmup *cron.WarmupEnqueuer) *PreferenceHandler {
	return &PreferenceHandler{Repo: repo, RecCache: recCache, Warmup: warmup}
}

// GetPreferencesHandler returns the authenticated user's preference
// document, or null when none was ever saved.
func (h *PreferenceHandler) GetPreferencesHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	prefs, err := h.Repo.Fetch(userID)
	if err != nil {
		logger.Error("Failed to fetch preferences", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

type savePreferencesRequest struct {
	Cuisines            *[]string `json:"cuisines"`
	DietaryRestrictions *[]string `json:"dietaryRestrictions"`
	PriceRange          *string   `json:"priceRange"`
}

// SavePreferencesHandler merges the submitted fields into the user's
// document, then drops the user's recommendation cache and queues a
// warm-up against the new profile.
func (h *PreferenceHandler) SavePreferencesHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req savePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Cuisines == nil && req.DietaryRestrictions == nil && req.PriceRange == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No preference fields provided"})
		return
	}
	if req.PriceRange != nil {
		switch *req.PriceRange {
		case "1", "2", "3", "4":
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "priceRange must be between 1 and 4"})
			return
		}
	}

	update := preferenceRepo.PreferenceUpdate{
		Cuisines:            req.Cuisines,
		DietaryRestrictions: req.DietaryRestrictions,
		PriceRange:          req.PriceRange,
	}
	if err := h.Repo.Save(userID, update); err != nil {
		logger.Error("Failed to save preferences", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preferences"})
		return
	}

	h.RecCache.ClearUser(userID)
	h.Warmup.EnqueueWarmup(userID)

	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}
