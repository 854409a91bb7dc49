package favouriteRepo

import (
	"fmt"
	"time"

	"hungrylah/database"
	"hungrylah/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoInteractionRepo implements InteractionRepository using MongoDB.
// Dislikes share the composite-key shape of favourites but are write-only
// from the app's perspective.
type MongoInteractionRepo struct {
	coll *mongo.Collection
}

// NewMongoInteractionRepo creates a new instance of InteractionRepository using MongoDB.
func NewMongoInteractionRepo() InteractionRepository {
	coll := database.MongoClient.Database("hungrylah").Collection("dislikes")
	return &MongoInteractionRepo{coll: coll}
}

// AddDislike upserts the dislike document under its composite key.
func (r *MongoInteractionRepo) AddDislike(dislike *models.Dislike) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	key := models.FavouriteKey{UserID: dislike.UserID, RestaurantID: dislike.RestaurantID}
	dislike.DocID = key.DocID()
	dislike.CreatedAt = time.Now()

	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": dislike.DocID},
		dislike,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to add dislike %s: %w", dislike.DocID, err)
	}
	return nil
}

// DislikedIDs retrieves the restaurant ids the user has disliked.
func (r *MongoInteractionRepo) DislikedIDs(userID string) (map[string]struct{}, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"restaurantId": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list dislikes for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	ids := make(map[string]struct{})
	for cursor.Next(ctx) {
		var doc struct {
			RestaurantID string `bson:"restaurantId"`
		}
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		if doc.RestaurantID != "" {
			ids[doc.RestaurantID] = struct{}{}
		}
	}
	return ids, nil
}
