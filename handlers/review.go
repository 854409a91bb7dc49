package handlers

import (
	"net/http"
	"time"

	reviewRepo "hungrylah/database/repository/review"
	"hungrylah/models"
	"hungrylah/services/datacache"
	reviewService "hungrylah/services/review"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler serves the review feed and the two review mutations the
// app performs: posting a review and toggling a helpful vote.
type ReviewHandler struct {
	Repo    reviewRepo.ReviewRepository
	Service reviewService.ReviewService
	Catalog *datacache.DataCache
}

// NewReviewHandler builds the handler.
func NewReviewHandler(repo reviewRepo.ReviewRepository, service reviewService.ReviewService, catalog *datacache.DataCache) *ReviewHandler {
	return &ReviewHandler{Repo: repo, Service: service, Catalog: catalog}
}

// reviewWithAuthor is a feed entry: the review plus the author's public
// profile fields resolved through the user cache.
type reviewWithAuthor struct {
	models.Review
	AuthorName     string `json:"authorName,omitempty"`
	AuthorPhotoURL string `json:"authorPhotoURL,omitempty"`
}

// GetRecentReviewsHandler returns the home-feed review list with author
// display names joined in. Authors that cannot be resolved are served
// without a name rather than failing the feed.
func (h *ReviewHandler) GetRecentReviewsHandler(c *gin.Context) {
	reviews := h.Catalog.GetRecentReviews()
	c.JSON(http.StatusOK, gin.H{"reviews": h.withAuthors(reviews)})
}

// GetRestaurantReviewsHandler returns every review for one restaurant,
// newest first, with the same author join as the recent feed.
func (h *ReviewHandler) GetRestaurantReviewsHandler(c *gin.Context) {
	logger := getLogger(c)

	restaurantID := c.Param("restaurantId")
	if restaurantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing restaurantId"})
		return
	}

	reviews, err := h.Repo.GetByRestaurant(restaurantID)
	if err != nil {
		logger.Error("Failed to fetch restaurant reviews",
			zap.String("restaurantId", restaurantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": h.withAuthors(reviews)})
}

func (h *ReviewHandler) withAuthors(reviews []models.Review) []reviewWithAuthor {
	ids := make([]string, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.UserID)
	}
	byID := make(map[string]*models.User)
	for _, u := range h.Catalog.GetUsers(ids) {
		byID[u.ID] = u
	}

	out := make([]reviewWithAuthor, 0, len(reviews))
	for _, r := range reviews {
		entry := reviewWithAuthor{Review: r}
		if u, ok := byID[r.UserID]; ok {
			entry.AuthorName = u.DisplayName
			entry.AuthorPhotoURL = u.PhotoURL
		}
		out = append(out, entry)
	}
	return out
}

type createReviewRequest struct {
	RestaurantID string `json:"restaurantId" binding:"required"`
	Rating       int    `json:"rating" binding:"required"`
	ReviewText   string `json:"reviewText"`
}

// CreateReviewHandler posts a review for the authenticated user and drops
// the cached review feed so the new entry shows up on the next read.
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	review := &models.Review{
		RestaurantID: req.RestaurantID,
		UserID:       userID,
		Rating:       req.Rating,
		ReviewText:   req.ReviewText,
		CreatedAt:    time.Now(),
		UpvotedBy:    []string{},
	}
	if err := h.Service.Create(review); err != nil {
		logger.Error("Failed to create review",
			zap.String("userId", userID),
			zap.String("restaurantId", req.RestaurantID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	h.Catalog.Clear("reviews")

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// ToggleHelpfulVoteHandler flips the acting user's helpful vote on a review
// and returns the resulting state.
func (h *ReviewHandler) ToggleHelpfulVoteHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := actingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	reviewID := c.Param("reviewId")
	if reviewID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing reviewId"})
		return
	}

	review, err := h.Repo.GetByID(reviewID)
	if err != nil {
		logger.Error("Failed to load review", zap.String("reviewId", reviewID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load review"})
		return
	}
	if review == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	voted, err := h.Service.ToggleHelpfulVote(review, userID)
	if err != nil {
		logger.Error("Failed to toggle helpful vote",
			zap.String("reviewId", reviewID),
			zap.String("userId", userID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vote"})
		return
	}

	h.Catalog.Clear("reviews")

	c.JSON(http.StatusOK, gin.H{
		"voted":        voted,
		"helpfulVotes": review.HelpfulVotes,
	})
}
