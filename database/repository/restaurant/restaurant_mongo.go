package restaurantRepo

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

// MongoRestaurantRepo implements RestaurantRepository using MongoDB.
type MongoRestaurantRepo struct {
	coll *mongo.Collection
}

// NewMongoRestaurantRepo creates a new instance of RestaurantRepository using MongoDB.
func NewMongoRestaurantRepo() RestaurantRepository {
	coll := database.MongoClient.Database("hungrylah").Collection("restaurants")
	repo := &MongoRestaurantRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRestaurantRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "cuisineType", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetAll retrieves the full catalog in insertion order. Ranking relies on
// this order being stable between calls for equal-score tie breaking.
func (r *MongoRestaurantRepo) GetAll() ([]models.Restaurant, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	var restaurants []models.Restaurant
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, fmt.Errorf("failed to decode restaurants: %w", err)
	}
	return restaurants, nil
}

// GetByID retrieves a single restaurant, or nil when none exists.
func (r *MongoRestaurantRepo) GetByID(id string) (*models.Restaurant, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var restaurant models.Restaurant
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&restaurant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch restaurant %s: %w", id, err)
	}
	return &restaurant, nil
}
