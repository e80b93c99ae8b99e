package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"industry-lens/internal/models"
	"industry-lens/internal/repository"
	"industry-lens/internal/utils"
)

type FlagService struct {
	flags         repository.FlagRepository
	reviews       repository.ReviewRepository
	users         repository.UserRepository
	reviewService *ReviewService
	locks         *utils.KeyedMutex
}

func NewFlagService(
	flags repository.FlagRepository,
	reviews repository.ReviewRepository,
	users repository.UserRepository,
	reviewService *ReviewService,
	locks *utils.KeyedMutex,
) *FlagService {
	return &FlagService{
		flags:         flags,
		reviews:       reviews,
		users:         users,
		reviewService: reviewService,
		locks:         locks,
	}
}

// FlagReview records an abuse report and bumps the review's flag counter.
func (s *FlagService) FlagReview(ctx context.Context, reviewID, reporterID, reason string) (*models.Flag, error) {
	review, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	flag := &models.Flag{
		ID:        uuid.NewString(),
		ReviewID:  review.ID,
		UserID:    reporterID,
		Reason:    reason,
		Status:    models.FlagPending,
		CreatedAt: time.Now(),
	}
	if err := s.flags.CreateFlag(ctx, flag); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(review.ProfessionalID)
	defer unlock()

	review, err = s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		// Review vanished between the flag insert and the counter bump; the
		// flag still stands.
		return flag, nil
	}
	review.FlagCount++
	if err := s.reviews.UpdateReview(ctx, review); err != nil {
		return nil, err
	}

	return flag, nil
}

// FlagWithContext joins a flag with the flagged review and the reporter's
// username for the admin queue.
type FlagWithContext struct {
	models.Flag
	Review   *models.Review `json:"review,omitempty"`
	Reporter string         `json:"reporter"`
}

func (s *FlagService) ListFlags(ctx context.Context) ([]FlagWithContext, error) {
	flags, err := s.flags.GetAllFlags(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]FlagWithContext, 0, len(flags))
	for _, f := range flags {
		item := FlagWithContext{Flag: f, Reporter: "Unknown"}
		if review, err := s.reviews.GetReview(ctx, f.ReviewID); err == nil {
			item.Review = review
		}
		if reporter, err := s.users.GetUserByID(ctx, f.UserID); err == nil {
			item.Reporter = reporter.Username
		}
		results = append(results, item)
	}
	return results, nil
}

// ResolveFlag updates the flag's status and, for the "remove" action, deletes
// the flagged review through the regular deletion path so the author's
// counter and the professional's aggregate stay consistent.
func (s *FlagService) ResolveFlag(ctx context.Context, flagID string, status models.FlagStatus, action string) (*models.Flag, error) {
	if action != "" && action != models.FlagActionDismiss && action != models.FlagActionRemove {
		return nil, models.ErrInvalidStatus
	}

	flag, err := s.flags.GetFlag(ctx, flagID)
	if err != nil {
		return nil, err
	}

	flag.Status = status
	if err := s.flags.UpdateFlag(ctx, flag); err != nil {
		return nil, err
	}

	if action == models.FlagActionRemove {
		err := s.reviewService.DeleteReview(ctx, flag.ReviewID, "", true)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
	}

	return flag, nil
}
