package handlers

import (
	"net/http"

	"hungrylah/cron"
	"hungrylah/models"
	"hungrylah/services/recommend"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecommendationHandler serves both sides of the ranking flow: the cached
// client-facing endpoint and the raw ranking endpoint the cache's remote
// call targets.
type RecommendationHandler struct {
	Cache  *recommend.RecommendationCache
	Ranker recommend.Ranker
	Warmup *cron.WarmupEnqueuer
}

// NewRecommendationHandler builds the handler.
func NewRecommendationHandler(cache *recommend.RecommendationCache, ranker recommend.Ranker, warmup *cron.WarmupEnqueuer) *RecommendationHandler {
	return &RecommendationHandler{Cache: cache, Ranker: ranker, Warmup: warmup}
}

// GetRecommendationsHandler returns the cached recommendation list for the
// authenticated user.
func (h *RecommendationHandler) GetRecommendationsHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	filter := c.DefaultQuery("filter", models.FilterAll)

	recs, err := h.Cache.GetRecommendations(c.Request.Context(), userID, filter)
	if err != nil {
		logger.Error("Failed to get recommendations",
			zap.String("userId", userID),
			zap.String("filter", filter),
			zap.Error(err))
		c.JSON(rankingStatus(err), gin.H{"error": userFacingMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// RankHandler is the ranking backend endpoint:
// GET /recommendations/:userId?filter=... It computes a fresh ranking from
// the catalog and the user's stored preferences, bypassing the result cache.
func (h *RecommendationHandler) RankHandler(c *gin.Context) {
	logger := getLogger(c)

	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId"})
		return
	}
	filter := c.DefaultQuery("filter", models.FilterAll)

	ranked, err := h.Ranker.Rank(userID, filter)
	if err != nil {
		logger.Error("Ranking failed",
			zap.String("userId", userID),
			zap.String("filter", filter),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Ranking failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": ranked})
}

// PreloadHandler queues a background warm-up of the authenticated user's
// recommendation cache.
func (h *RecommendationHandler) PreloadHandler(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	h.Warmup.EnqueueWarmup(userID)
	c.JSON(http.StatusAccepted, gin.H{"status": "warmup queued"})
}

// ClearCacheHandler drops the authenticated user's cached rankings.
func (h *RecommendationHandler) ClearCacheHandler(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	h.Cache.ClearUser(userID)
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// rankingStatus maps the ranking error taxonomy onto HTTP status codes.
func rankingStatus(err error) int {
	switch recommend.ErrorCode(err) {
	case recommend.CodeTimeout:
		return http.StatusGatewayTimeout
	case recommend.CodeServerError, recommend.CodeNetworkUnreachable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userFacingMessage picks an actionable message per error category.
func userFacingMessage(err error) string {
	switch recommend.ErrorCode(err) {
	case recommend.CodeTimeout:
		return "Recommendations took too long. Please try again."
	case recommend.CodeNetworkUnreachable:
		return "Could not reach the recommendation service. Check your connection."
	case recommend.CodeServerError:
		return "The recommendation service had a problem: " + err.Error()
	case recommend.CodeMalformedRequest:
		return "Could not build the recommendation request."
	default:
		return "Failed to load recommendations."
	}
}
