package models

import "time"

// Review is a user-authored restaurant review. Invariant: HelpfulVotes must
// equal len(UpvotedBy) after every toggle.
type Review struct {
	ID           string    `bson:"id" json:"id"`
	RestaurantID string    `bson:"restaurantId" json:"restaurantId"`
	UserID       string    `bson:"userId" json:"userId"`
	Rating       int       `bson:"rating" json:"rating"` // 1..5
	ReviewText   string    `bson:"reviewText" json:"reviewText"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	HelpfulVotes int       `bson:"helpfulVotes" json:"helpfulVotes"`
	UpvotedBy    []string  `bson:"upvotedBy" json:"upvotedBy"`
}

// HasUpvoted reports whether the given user is already in UpvotedBy.
func (r *Review) HasUpvoted(userID string) bool {
	for _, id := range r.UpvotedBy {
		if id == userID {
			return true
		}
	}
	return false
}
