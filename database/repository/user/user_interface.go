package userRepo

import "hungrylah/models"

// UserRepository defines the read-only user lookups this core needs for
// display-name joins on review feeds.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID, or nil when no such user
	// exists ("not found" is a result, not an error).
	GetByID(id string) (*models.User, error)
}
