package handlers

import (
	"net/http"

	"hungrylah/services/datacache"
	"hungrylah/services/recommend"
	"hungrylah/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports dependency reachability plus cache occupancy.
type HealthHandler struct {
	Catalog  *datacache.DataCache
	RecCache *recommend.RecommendationCache
}

// NewHealthHandler builds the handler.
func NewHealthHandler(catalog *datacache.DataCache, recCache *recommend.RecommendationCache) *HealthHandler {
	return &HealthHandler{Catalog: catalog, RecCache: recCache}
}

// HealthCheckHandler returns the latest monitor snapshot and cache stats.
// It reports status 200 regardless; consumers inspect the body.
func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	status := utils.GetHealthStatus()

	c.JSON(http.StatusOK, gin.H{
		"status":              "ok",
		"dependencies":        status,
		"dataCache":           h.Catalog.GetStats(),
		"recommendationCache": h.RecCache.GetStats(),
	})
}
