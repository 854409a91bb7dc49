package review

import (
	reviewRepo "hungrylah/database/repository/review"
	"hungrylah/models"
	"hungrylah/services/optimistic"

	"go.uber.org/zap"
)

// ReviewService exposes the review operations the app performs beyond
// plain reads: posting a review and toggling a helpful vote.
type ReviewService interface {
	Create(review *models.Review) error
	// ToggleHelpfulVote flips the acting user's vote on the review and
	// reports whether the outcome was a vote (true) or an unvote (false).
	// The decision is made from the review state the caller holds, not from
	// a server-side re-check; the store applies exactly what was decided.
	ToggleHelpfulVote(review *models.Review, userID string) (bool, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Repo   reviewRepo.ReviewRepository
	Logger *zap.Logger
}

// Create stores a new review.
func (s *DefaultReviewService) Create(review *models.Review) error {
	return s.Repo.Create(review)
}

// ToggleHelpfulVote applies the toggle optimistically to the passed review
// and commits it to the store. On failure the review is restored to its
// pre-toggle state so the caller can re-render and surface the error.
// The counter and the membership set move together, keeping
// HelpfulVotes == len(UpvotedBy) through any sequence of toggles.
func (s *DefaultReviewService) ToggleHelpfulVote(review *models.Review, userID string) (bool, error) {
	vote := !review.HasUpvoted(userID)

	err := optimistic.Apply(review, cloneReview,
		func(r *models.Review) { applyToggle(r, userID, vote) },
		func() error { return s.Repo.ApplyHelpfulVote(review.ID, userID, vote) },
	)
	if err != nil {
		s.Logger.Warn("helpful vote toggle failed, rolled back",
			zap.String("reviewId", review.ID),
			zap.String("userId", userID),
			zap.Bool("vote", vote),
			zap.Error(err))
		return vote, err
	}
	return vote, nil
}

func cloneReview(r models.Review) models.Review {
	r.UpvotedBy = append([]string(nil), r.UpvotedBy...)
	return r
}

func applyToggle(r *models.Review, userID string, vote bool) {
	if vote {
		if !r.HasUpvoted(userID) {
			r.UpvotedBy = append(r.UpvotedBy, userID)
			r.HelpfulVotes++
		}
		return
	}
	for i, id := range r.UpvotedBy {
		if id == userID {
			r.UpvotedBy = append(r.UpvotedBy[:i], r.UpvotedBy[i+1:]...)
			r.HelpfulVotes--
			return
		}
	}
}
