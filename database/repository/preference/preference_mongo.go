package preferenceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hungrylah/database"
	"hungrylah/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPreferenceRepo implements PreferenceRepository using MongoDB.
type MongoPreferenceRepo struct {
	coll *mongo.Collection
}

// NewMongoPreferenceRepo creates a new instance of PreferenceRepository using MongoDB.
func NewMongoPreferenceRepo() PreferenceRepository {
	coll := database.MongoClient.Database("hungrylah").Collection("userPreferences")
	return &MongoPreferenceRepo{coll: coll}
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Fetch retrieves the preference document keyed by user id.
func (r *MongoPreferenceRepo) Fetch(userID string) (*models.UserPreferences, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var prefs models.UserPreferences
	err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&prefs)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch preferences for user %s: %w", userID, err)
	}
	prefs.UserID = userID
	return &prefs, nil
}

// Save upserts the provided fields into the user's document.
func (r *MongoPreferenceRepo) Save(userID string, update PreferenceUpdate) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{
		"userId":    userID,
		"updatedAt": time.Now(),
	}
	if update.Cuisines != nil {
		set["cuisines"] = *update.Cuisines
	}
	if update.DietaryRestrictions != nil {
		set["dietaryRestrictions"] = *update.DietaryRestrictions
	}
	if update.PriceRange != nil {
		set["priceRange"] = *update.PriceRange
	}

	_, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save preferences for user %s: %w", userID, err)
	}
	return nil
}
