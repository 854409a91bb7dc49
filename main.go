// File: hungrylah/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hungrylah/config"
	"hungrylah/cron"
	"hungrylah/database"
	favouriteRepo "hungrylah/database/repository/favourite"
	preferenceRepo "hungrylah/database/repository/preference"
	restaurantRepo "hungrylah/database/repository/restaurant"
	reviewRepoPkg "hungrylah/database/repository/review"
	userRepoPkg "hungrylah/database/repository/user"
	"hungrylah/handlers"
	"hungrylah/middleware"
	"hungrylah/routes"
	"hungrylah/services/datacache"
	"hungrylah/services/recommend"
	"hungrylah/services/review"
	"hungrylah/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	restRepo := restaurantRepo.NewMongoRestaurantRepo()
	prefRepo := preferenceRepo.NewMongoPreferenceRepo()
	favRepo := favouriteRepo.NewMongoFavouriteRepo()
	interactionRepo := favouriteRepo.NewMongoInteractionRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// caches.
	dataCache := datacache.New(datacache.Deps{
		Restaurants: restRepo,
		Reviews:     reviewRepo,
		Users:       userRepo,
	}, config.CatalogCacheTTL(), config.AppConfig.UserCacheMaxEntries, logger)

	rankingClient := recommend.NewHTTPRankingClient(
		config.AppConfig.RankingAPIURL,
		config.RankingTimeout(),
		logger,
	)
	recCache := recommend.NewRecommendationCache(
		rankingClient,
		config.RecommendCacheTTL(),
		config.AppConfig.RankingMaxRetries,
		config.RankingRetryDelay(),
		logger,
	)

	// services.
	ranker := &recommend.DefaultRanker{
		PrefRepo:     prefRepo,
		Interactions: interactionRepo,
		Catalog:      dataCache,
		Logger:       logger,
	}
	reviewService := &review.DefaultReviewService{
		Repo:   reviewRepo,
		Logger: logger,
	}

	// Background warm-up queue and health monitoring.
	warmupEnqueuer := cron.NewWarmupEnqueuer()
	cron.InitWarmupWorker(recCache)
	utils.StartHealthMonitor(database.MongoClient, rankingClient.Healthy)

	// Warm the catalog and review caches before the first request lands.
	dataCache.Preload()

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Recommendations: handlers.NewRecommendationHandler(recCache, ranker, warmupEnqueuer),
		Preferences:     handlers.NewPreferenceHandler(prefRepo, recCache, warmupEnqueuer),
		Favourites:      handlers.NewFavouriteHandler(favRepo, interactionRepo),
		Reviews:         handlers.NewReviewHandler(reviewRepo, reviewService, dataCache),
		Restaurants:     handlers.NewRestaurantHandler(dataCache),
		Health:          handlers.NewHealthHandler(dataCache, recCache),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
