package models

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Restaurant is a catalog record. The catalog is sourced externally and
// treated as read-only; nothing in this codebase mutates a Restaurant.
type Restaurant struct {
	ID          string   `bson:"id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	CuisineType string   `bson:"cuisineType" json:"cuisineType"`
	PriceLevel  int      `bson:"priceLevel" json:"priceLevel"` // 1..4
	Rating      *float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	Address     string   `bson:"address" json:"address"`
	Location    GeoPoint `bson:"location" json:"location"`
	PhotoURL    string   `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
}

// ScoredRestaurant pairs a catalog record with its affinity score for one
// user. Produced fresh on every ranking pass, never persisted.
type ScoredRestaurant struct {
	Restaurant
	Score float64 `json:"score"`
}
