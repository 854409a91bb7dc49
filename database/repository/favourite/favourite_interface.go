package favouriteRepo

import "hungrylah/models"

// FavouriteRepository defines membership records for favourited
// restaurants. Identity is the composite (user, restaurant) key, so both
// Add and Remove are idempotent by construction.
type FavouriteRepository interface {
	// Add upserts the favourite; re-adding an existing pair overwrites the
	// record rather than duplicating it.
	Add(fav *models.Favourite) error
	// Remove deletes the record for the key. Removing a key that was never
	// added is a no-op, not an error.
	Remove(key models.FavouriteKey) error
	// ListByUser retrieves the user's full favourite records.
	ListByUser(userID string) ([]models.Favourite, error)
	// ListIDs retrieves only the favourited restaurant ids, for callers that
	// need a membership check without pulling full records.
	ListIDs(userID string) (map[string]struct{}, error)
}

// InteractionRepository records dislikes. Dislikes are an append-only
// exclusion signal; there is deliberately no removal operation.
type InteractionRepository interface {
	// AddDislike upserts the dislike record for the pair.
	AddDislike(dislike *models.Dislike) error
	// DislikedIDs retrieves the set of restaurant ids the user disliked.
	DislikedIDs(userID string) (map[string]struct{}, error)
}
