package reviewRepo

import "hungrylah/models"

// ReviewRepository defines access to restaurant reviews. Besides reads, the
// only mutation this core performs is the field-level helpful-vote update.
type ReviewRepository interface {
	// Create inserts a new review, assigning an id when none is set.
	Create(review *models.Review) error
	// GetByID retrieves a review by id, or nil when none exists.
	GetByID(id string) (*models.Review, error)
	// GetRecent retrieves the most recent reviews, newest first.
	GetRecent(limit int) ([]models.Review, error)
	// GetByRestaurant retrieves all reviews for one restaurant, newest first.
	GetByRestaurant(restaurantID string) ([]models.Review, error)
	// ApplyHelpfulVote applies the client-decided toggle outcome: vote adds
	// the user to upvotedBy and increments helpfulVotes, unvote does the
	// reverse. The two field updates are issued as one document update so a
	// single toggle can never half-apply.
	ApplyHelpfulVote(reviewID, userID string, vote bool) error
}
