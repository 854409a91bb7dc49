package preferenceRepo

import "hungrylah/models"

// PreferenceUpdate carries the fields of a partial preference save. Nil
// fields are left untouched in the stored document (merge semantics).
type PreferenceUpdate struct {
	Cuisines            *[]string
	DietaryRestrictions *[]string
	PriceRange          *string
}

// PreferenceRepository defines access to the one-document-per-user taste
// profile. Documents are created lazily on first save and never deleted here.
type PreferenceRepository interface {
	// Fetch retrieves the user's preference document, or nil when the user
	// has never saved preferences. Absence is not an error.
	Fetch(userID string) (*models.UserPreferences, error)
	// Save merges the given fields into the user's document, creating it if
	// needed, and stamps updatedAt. Callers must clear the user's
	// recommendation cache afterwards.
	Save(userID string, update PreferenceUpdate) error
}
