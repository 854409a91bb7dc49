package models

import "time"

// User carries the public profile fields needed for display-name joins on
// review feeds. Account management lives elsewhere; this core only reads.
type User struct {
	ID          string    `bson:"id" json:"id"`
	DisplayName string    `bson:"displayName" json:"displayName"`
	Email       string    `bson:"email" json:"email,omitempty"`
	PhotoURL    string    `bson:"photoURL" json:"photoURL,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
