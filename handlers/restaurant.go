package handlers

import (
	"net/http"
	"strings"

	"hungrylah/models"
	"hungrylah/services/datacache"

	"github.com/gin-gonic/gin"
)

// RestaurantHandler serves the catalog out of the read-through cache.
type RestaurantHandler struct {
	Catalog *datacache.DataCache
}

// NewRestaurantHandler builds the handler.
func NewRestaurantHandler(catalog *datacache.DataCache) *RestaurantHandler {
	return &RestaurantHandler{Catalog: catalog}
}

// GetRestaurantsHandler lists the catalog. An optional q parameter
// filters by case-insensitive substring match on name and cuisine.
func (h *RestaurantHandler) GetRestaurantsHandler(c *gin.Context) {
	restaurants := h.Catalog.GetRestaurants()

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		restaurants = filterRestaurants(restaurants, q)
	}

	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// GetRestaurantHandler returns one restaurant by id from the cached
// catalog, avoiding a store round trip for detail views.
func (h *RestaurantHandler) GetRestaurantHandler(c *gin.Context) {
	id := c.Param("restaurantId")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing restaurantId"})
		return
	}

	for _, r := range h.Catalog.GetRestaurants() {
		if r.ID == id {
			c.JSON(http.StatusOK, gin.H{"restaurant": r})
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
}

func filterRestaurants(restaurants []models.Restaurant, query string) []models.Restaurant {
	q := strings.ToLower(query)
	var out []models.Restaurant
	for _, r := range restaurants {
		if strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.CuisineType), q) {
			out = append(out, r)
		}
	}
	if out == nil {
		out = []models.Restaurant{}
	}
	return out
}
