package handlers

// HandlerBundle aggregates all handler groups for route registration.
type HandlerBundle struct {
	Recommendations *RecommendationHandler
	Preferences     *PreferenceHandler
	Favourites      *FavouriteHandler
	Reviews         *ReviewHandler
	Restaurants     *RestaurantHandler
	Health          *HealthHandler
}
