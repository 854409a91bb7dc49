package favouriteRepo

import (
	"context"
	"fmt"
	"time"

	"hungrylah/database"
	"hungrylah/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFavouriteRepo implements FavouriteRepository using MongoDB. The
// document id is the rendered composite key, which makes the at-most-one
// record per (user, restaurant) invariant a property of the collection
// itself rather than of application code.
type MongoFavouriteRepo struct {
	coll *mongo.Collection
}

// NewMongoFavouriteRepo creates a new instance of FavouriteRepository using MongoDB.
func NewMongoFavouriteRepo() FavouriteRepository {
	coll := database.MongoClient.Database("hungrylah").Collection("favourites")
	repo := &MongoFavouriteRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoFavouriteRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Add upserts the favourite document under its composite key.
func (r *MongoFavouriteRepo) Add(fav *models.Favourite) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fav.DocID = fav.Key().DocID()
	fav.CreatedAt = time.Now()

	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": fav.DocID},
		fav,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to add favourite %s: %w", fav.DocID, err)
	}
	return nil
}

// Remove deletes the favourite for the key; absent keys are a no-op.
func (r *MongoFavouriteRepo) Remove(key models.FavouriteKey) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": key.DocID()})
	if err != nil {
		return fmt.Errorf("failed to remove favourite %s: %w", key.DocID(), err)
	}
	return nil
}

// ListByUser retrieves all favourite records for the user.
func (r *MongoFavouriteRepo) ListByUser(userID string) ([]models.Favourite, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list favourites for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var favs []models.Favourite
	if err := cursor.All(ctx, &favs); err != nil {
		return nil, fmt.Errorf("failed to decode favourites: %w", err)
	}
	return favs, nil
}

// ListIDs retrieves the favourited restaurant ids only, via projection.
func (r *MongoFavouriteRepo) ListIDs(userID string) (map[string]struct{}, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"restaurantId": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list favourite ids for user %s: %w", userID, err)
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
