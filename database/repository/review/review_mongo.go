package reviewRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hungrylah/database"
	"hungrylah/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	coll := database.MongoClient.Database("hungrylah").Collection("reviews")
	repo := &MongoReviewRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "restaurantId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new review document.
func (r *MongoReviewRepo) Create(review *models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	review.CreatedAt = time.Now()
	if review.UpvotedBy == nil {
		review.UpvotedBy = []string{}
	}
	review.HelpfulVotes = len(review.UpvotedBy)

	_, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetByID retrieves a review, or nil when none exists.
func (r *MongoReviewRepo) GetByID(id string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var review models.Review
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review %s: %w", id, err)
	}
	return &review, nil
}

// GetRecent retrieves the newest reviews up to limit.
func (r *MongoReviewRepo) GetRecent(limit int) ([]models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// GetByRestaurant retrieves all reviews for a restaurant, newest first.
func (r *MongoReviewRepo) GetByRestaurant(restaurantID string) ([]models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"restaurantId": restaurantID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews for restaurant %s: %w", restaurantID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// ApplyHelpfulVote pairs the counter increment with the membership update
// in one UpdateOne. The vote/unvote decision itself is made by the caller
// from its latest known state; there is no re-check here.
func (r *MongoReviewRepo) ApplyHelpfulVote(reviewID, userID string, vote bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var update bson.M
	if vote {
		update = bson.M{
			"$addToSet": bson.M{"upvotedBy": userID},
			"$inc":      bson.M{"helpfulVotes": 1},
		}
	} else {
		update = bson.M{
			"$pull": bson.M{"upvotedBy": userID},
			"$inc":  bson.M{"helpfulVotes": -1},
		}
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": reviewID}, update)
	if err != nil {
		return fmt.Errorf("failed to update helpful votes for review %s: %w", reviewID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("review with id %s not found", reviewID)
	}
	return nil
}
