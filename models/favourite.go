package models

import "time"

// FavouriteKey is the composite identity of a (user, restaurant) pairing.
// It is a proper pair with structural equality; the concatenated form only
// appears at the document boundary, so a separator inside either id cannot
// collide two distinct pairs in memory.
type FavouriteKey struct {
	UserID       string
	RestaurantID string
}

// DocID renders the key in the userId_restaurantId form used as the
// document id in the favourites and dislikes collections.
func (k FavouriteKey) DocID() string {
	return k.UserID + "_" + k.RestaurantID
}

// Favourite marks a restaurant as favourited by a user. At most one record
// exists per (user, restaurant) pair; re-adding overwrites. The restaurant
// fields are denormalized so favourite lists render without a catalog join.
type Favourite struct {
	DocID        string    `bson:"_id" json:"id"`
	UserID       string    `bson:"userId" json:"userId"`
	RestaurantID string    `bson:"restaurantId" json:"restaurantId"`
	Name         string    `bson:"name" json:"name"`
	CuisineType  string    `bson:"cuisineType" json:"cuisineType"`
	PriceLevel   int       `bson:"priceLevel" json:"priceLevel"`
	PhotoURL     string    `bson:"photoURL" json:"photoURL"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// Key rebuilds the composite key from the stored fields.
func (f *Favourite) Key() FavouriteKey {
	return FavouriteKey{UserID: f.UserID, RestaurantID: f.RestaurantID}
}

// Dislike is an append-only negative signal with the same composite-key
// shape as Favourite. Once recorded it is only ever read as an exclusion
// set; there is no removal operation.
type Dislike struct {
	DocID        string    `bson:"_id" json:"id"`
	UserID       string    `bson:"userId" json:"userId"`
	RestaurantID string    `bson:"restaurantId" json:"restaurantId"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
