package models

import (
	"strconv"
	"time"
)

// UserPreferences is the single taste-profile document per user, stored in
// the userPreferences collection keyed by user id. Created lazily on first
// save and mutated only by the owning user.
//
// PriceRange is stored as a string ("1".."4") to stay wire-compatible with
// the document shape the mobile clients already write.
type UserPreferences struct {
	UserID              string    `bson:"userId" json:"userId"`
	Cuisines            []string  `bson:"cuisines" json:"cuisines"`
	DietaryRestrictions []string  `bson:"dietaryRestrictions" json:"dietaryRestrictions"`
	PriceRange          string    `bson:"priceRange" json:"priceRange"`
	UpdatedAt           time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PriceBand parses PriceRange into the 1..4 integer band used by scoring.
// A missing or malformed value yields 0, which never matches any price level.
func (p *UserPreferences) PriceBand() int {
	band, err := strconv.Atoi(p.PriceRange)
	if err != nil || band < 1 || band > 4 {
		return 0
	}
	return band
}

// HasCuisine reports whether the given cuisine is in the user's profile.
func (p *UserPreferences) HasCuisine(cuisine string) bool {
	for _, c := range p.Cuisines {
		if c == cuisine {
			return true
		}
	}
	return false
}
