package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"industry-lens/internal/models"
	"industry-lens/internal/repository"
	"industry-lens/internal/utils"
)

type ReviewService struct {
	reviews       repository.ReviewRepository
	professionals repository.ProfessionalRepository
	users         repository.UserRepository
	stats         *StatsUpdater
	locks         *utils.KeyedMutex
}

func NewReviewService(
	reviews repository.ReviewRepository,
	professionals repository.ProfessionalRepository,
	users repository.UserRepository,
	stats *StatsUpdater,
	locks *utils.KeyedMutex,
) *ReviewService {
	return &ReviewService{
		reviews:       reviews,
		professionals: professionals,
		users:         users,
		stats:         stats,
		locks:         locks,
	}
}

type CreateReviewInput struct {
	ProfessionalID      string `json:"professionalId" binding:"required"`
	Rating              int    `json:"rating" binding:"required,min=1,max=5"`
	Title               string `json:"title" binding:"required"`
	Content             string `json:"content" binding:"required"`
	ProjectContext      string `json:"projectContext"`
	WorkingRelationship string `json:"workingRelationship"`
}

// CreateReview inserts a pending review. The duplicate check and the insert
// run under the professional's lock so two concurrent submissions by the same
// author cannot both pass.
func (s *ReviewService) CreateReview(ctx context.Context, userID string, input CreateReviewInput) (*models.Review, error) {
	unlock := s.locks.Lock(input.ProfessionalID)
	defer unlock()

	prof, err := s.professionals.GetProfessional(ctx, input.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if prof.ReviewsDisabled {
		return nil, models.ErrReviewsDisabled
	}

	if _, err := s.reviews.FindReviewByProfessionalAndUser(ctx, input.ProfessionalID, userID); err == nil {
		return nil, models.ErrDuplicateReview
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	review := &models.Review{
		ID:                  uuid.NewString(),
		ProfessionalID:      input.ProfessionalID,
		UserID:              userID,
		Rating:              input.Rating,
		Title:               input.Title,
		Content:             input.Content,
		ProjectContext:      input.ProjectContext,
		WorkingRelationship: input.WorkingRelationship,
		Status:              models.StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}

	if err := s.reviews.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	if err := s.users.AdjustReviewCount(ctx, userID, 1); err != nil {
		log.Printf("Failed to bump review count for user %s: %v", userID, err)
	}

	return review, nil
}

// UpdateReview applies a partial edit. Any edit sends the review back to
// moderation, so a previously approved review drops out of the professional's
// aggregate until re-approved.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID, editorID string, isAdmin bool, upd models.ReviewUpdate) (*models.Review, error) {
	review, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != editorID && !isAdmin {
		return nil, models.ErrForbidden
	}

	unlock := s.locks.Lock(review.ProfessionalID)
	defer unlock()

	review, err = s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if upd.Rating != nil {
		review.Rating = *upd.Rating
	}
	if upd.Title != nil {
		review.Title = *upd.Title
	}
	if upd.Content != nil {
		review.Content = *upd.Content
	}
	if upd.ProjectContext != nil {
		review.ProjectContext = *upd.ProjectContext
	}
	if upd.WorkingRelationship != nil {
		review.WorkingRelationship = *upd.WorkingRelationship
	}
	review.Status = models.StatusPending
	review.DenialReason = ""
	review.DenialDetails = ""
	review.UpdatedAt = time.Now()

	if err := review.Validate(); err != nil {
		return nil, err
	}
	if err := s.reviews.UpdateReview(ctx, review); err != nil {
		return nil, err
	}

	if err := s.stats.Recompute(ctx, review.ProfessionalID); err != nil {
		return nil, err
	}

	return review, nil
}

// DeleteReview removes a review, decrements the author's counter and
// recomputes the professional's aggregate. Flag resolution with the "remove"
// action goes through this same path.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, editorID string, isAdmin bool) error {
	review, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != editorID && !isAdmin {
		return models.ErrForbidden
	}

	unlock := s.locks.Lock(review.ProfessionalID)
	defer unlock()

	if err := s.reviews.DeleteReview(ctx, reviewID); err != nil {
		return err
	}

	if err := s.users.AdjustReviewCount(ctx, review.UserID, -1); err != nil && !errors.Is(err, models.ErrNotFound) {
		log.Printf("Failed to drop review count for user %s: %v", review.UserID, err)
	}

	return s.stats.Recompute(ctx, review.ProfessionalID)
}

// MarkHelpful bumps the helpful counter. Repeat calls by the same caller all
// count; there is no per-user dedup.
func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID string) (int, error) {
	review, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return 0, err
	}

	unlock := s.locks.Lock(review.ProfessionalID)
	defer unlock()

	review, err = s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return 0, err
	}
	review.HelpfulCount++
	if err := s.reviews.UpdateReview(ctx, review); err != nil {
		return 0, err
	}
	return review.HelpfulCount, nil
}

// ReviewWithProfessional pairs a review with its professional for "my
// reviews" style listings. Professional is nil when the profile has been
// deleted since.
type ReviewWithProfessional struct {
	models.Review
	Professional *models.Professional `json:"professional,omitempty"`
}

func (s *ReviewService) MyReviews(ctx context.Context, userID string) ([]ReviewWithProfessional, error) {
	reviews, err := s.reviews.GetReviewsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	results := make([]ReviewWithProfessional, 0, len(reviews))
	for _, r := range reviews {
		item := ReviewWithProfessional{Review: r}
		if prof, err := s.professionals.GetProfessional(ctx, r.ProfessionalID); err == nil {
			item.Professional = prof
		}
		results = append(results, item)
	}
	return results, nil
}

type ReviewCheck struct {
	HasReviewed bool                `json:"hasReviewed"`
	ReviewID    string              `json:"reviewId,omitempty"`
	Status      models.ReviewStatus `json:"status,omitempty"`
}

func (s *ReviewService) CheckReviewed(ctx context.Context, professionalID, userID string) (*ReviewCheck, error) {
	review, err := s.reviews.FindReviewByProfessionalAndUser(ctx, professionalID, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return &ReviewCheck{HasReviewed: false}, nil
		}
		return nil, err
	}
	return &ReviewCheck{HasReviewed: true, ReviewID: review.ID, Status: review.Status}, nil
}
