package routes

import (
	"net/http"
	"time"

	"hungrylah/handlers"
	"hungrylah/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRootRoute registers the base path. The ranking health probe hits
// GET / on the configured backend, so a self-hosted deployment must answer
// it or warm-up stays permanently disabled.
func RegisterRootRoute(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm hungrylah"})
	})
}

// RegisterRecommendationRoutes registers the cached recommendation surface
// and the raw ranking endpoint the cache fetches from.
func RegisterRecommendationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Ranking backend contract: unauthenticated, addressed by path userId.
	r.GET("/recommendations/:userId", hb.Recommendations.RankHandler)

	api := r.Group("/api/recommendations")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Recommendations.GetRecommendationsHandler)
		api.POST("/preload", hb.Recommendations.PreloadHandler)
		api.DELETE("/cache", hb.Recommendations.ClearCacheHandler)
	}
}

// RegisterPreferenceRoutes registers taste-profile endpoints.
func RegisterPreferenceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/preferences")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Preferences.GetPreferencesHandler)
		api.PUT("", hb.Preferences.SavePreferencesHandler)
	}
}

// RegisterFavouriteRoutes registers favourite and dislike endpoints.
func RegisterFavouriteRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/favourites")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Favourites.ListFavouritesHandler)
		api.GET("/ids", hb.Favourites.ListFavouriteIDsHandler)
		api.POST("", hb.Favourites.AddFavouriteHandler)
		api.DELETE("/:restaurantId", hb.Favourites.RemoveFavouriteHandler)
	}

	dislikes := r.Group("/api/dislikes")
	{
		dislikes.Use(middleware.JWTAuthMiddleware())
		dislikes.GET("/ids", hb.Favourites.ListDislikeIDsHandler)
		dislikes.POST("", hb.Favourites.AddDislikeHandler)
	}
}

// RegisterReviewRoutes registers the review feed and mutations.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		// Feeds are public; mutations require authentication.
		api.GET("/recent", hb.Reviews.GetRecentReviewsHandler)
		api.GET("/restaurant/:restaurantId", hb.Reviews.GetRestaurantReviewsHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("", hb.Reviews.CreateReviewHandler)
		protected.POST("/:reviewId/helpful", hb.Reviews.ToggleHelpfulVoteHandler)
	}
}

// RegisterRestaurantRoutes registers catalog reads.
func RegisterRestaurantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/restaurants")
	{
		api.GET("", hb.Restaurants.GetRestaurantsHandler)
		api.GET("/:restaurantId", hb.Restaurants.GetRestaurantHandler)
	}
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.HealthCheckHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRootRoute(r)
	RegisterRecommendationRoutes(r, hb)
	RegisterPreferenceRoutes(r, hb)
	RegisterFavouriteRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterRestaurantRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
