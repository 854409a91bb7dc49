package restaurantRepo

import "hungrylah/models"

// RestaurantRepository defines read access to the restaurant catalog. The
// catalog is ingested out of band and never written through this interface.
type RestaurantRepository interface {
	// GetAll retrieves the full catalog.
	GetAll() ([]models.Restaurant, error)
	// GetByID retrieves a single restaurant by its unique ID.
	GetByID(id string) (*models.Restaurant, error)
}
