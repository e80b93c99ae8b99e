package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"industry-lens/internal/models"
	"industry-lens/internal/repository"
	"industry-lens/internal/utils"
)

// Notifier receives the single in-app notification produced by a review's
// first moderation decision.
type Notifier interface {
	CreateModerationNotification(ctx context.Context, notif *models.Notification) error
}

type ModerationService struct {
	reviews       repository.ReviewRepository
	professionals repository.ProfessionalRepository
	users         repository.UserRepository
	flags         repository.FlagRepository
	notifier      Notifier
	email         EmailService
	stats         *StatsUpdater
	locks         *utils.KeyedMutex
}

func NewModerationService(
	reviews repository.ReviewRepository,
	professionals repository.ProfessionalRepository,
	users repository.UserRepository,
	flags repository.FlagRepository,
	notifier Notifier,
	email EmailService,
	stats *StatsUpdater,
	locks *utils.KeyedMutex,
) *ModerationService {
	return &ModerationService{
		reviews:       reviews,
		professionals: professionals,
		users:         users,
		flags:         flags,
		notifier:      notifier,
		email:         email,
		stats:         stats,
		locks:         locks,
	}
}

// SetReviewStatus applies an admin moderation decision. The status change and
// the aggregate recompute are atomic with respect to other operations on the
// same professional; notification and email fire exactly once, on the
// pending -> approved/rejected transition only, and run outside the lock.
func (s *ModerationService) SetReviewStatus(ctx context.Context, reviewID string, status models.ReviewStatus, denialReason, denialDetails string) (*models.Review, error) {
	if !status.IsValid() {
		return nil, models.ErrInvalidStatus
	}

	review, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	review, previous, err := s.applyStatus(ctx, review.ProfessionalID, reviewID, status, denialReason, denialDetails)
	if err != nil {
		return nil, err
	}

	if previous == models.StatusPending && (status == models.StatusApproved || status == models.StatusRejected) {
		s.notifyDecision(ctx, review, status, denialReason, denialDetails)
	}

	return review, nil
}

func (s *ModerationService) applyStatus(ctx context.Context, professionalID, reviewID string, status models.ReviewStatus, denialReason, denialDetails string) (*models.Review, models.ReviewStatus, error) {
	unlock := s.locks.Lock(professionalID)
	defer unlock()

	review, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return nil, "", err
	}

	previous := review.Status
	review.Status = status
	if status == models.StatusRejected {
		review.DenialReason = denialReason
		review.DenialDetails = denialDetails
	} else {
		review.DenialReason = ""
		review.DenialDetails = ""
	}

	if err := s.reviews.UpdateReview(ctx, review); err != nil {
		return nil, "", err
	}

	// The approved set changed if the review entered or left it.
	if previous == models.StatusApproved || status == models.StatusApproved {
		if err := s.stats.Recompute(ctx, professionalID); err != nil {
			return nil, "", err
		}
	}

	return review, previous, nil
}

func (s *ModerationService) notifyDecision(ctx context.Context, review *models.Review, status models.ReviewStatus, denialReason, denialDetails string) {
	professionalName := "Unknown Professional"
	prof, profErr := s.professionals.GetProfessional(ctx, review.ProfessionalID)
	if profErr == nil {
		professionalName = prof.Name
	}

	notif := &models.Notification{
		UserID:           review.UserID,
		ReviewID:         review.ID,
		ProfessionalID:   review.ProfessionalID,
		ProfessionalName: professionalName,
	}
	if status == models.StatusApproved {
		notif.Type = models.TypeReviewApproved
		notif.Title = "Review Approved!"
		notif.Message = fmt.Sprintf("Your review of %s has been approved and is now visible to others.", professionalName)
	} else {
		notif.Type = models.TypeReviewRejected
		notif.Title = "Review Not Approved"
		notif.Message = fmt.Sprintf("Your review of %s has been denied.", professionalName)
		notif.DenialReason = denialReason
		notif.DenialDetails = denialDetails
	}

	if err := s.notifier.CreateModerationNotification(ctx, notif); err != nil {
		log.Printf("Failed to create moderation notification for review %s: %v", review.ID, err)
	}

	author, err := s.users.GetUserByID(ctx, review.UserID)
	if err != nil || prof == nil {
		return
	}

	// Email dispatch is fire-and-forget; a delivery failure never rolls back
	// the moderation decision.
	reviewCopy := *review
	go func() {
		if status == models.StatusApproved {
			if err := s.email.SendReviewApprovedEmail(author, &reviewCopy, prof); err != nil {
				log.Printf("Failed to send approval email for review %s: %v", reviewCopy.ID, err)
			}
			return
		}
		if err := s.email.SendReviewRejectedEmail(author, &reviewCopy, prof, denialReason, denialDetails); err != nil {
			log.Printf("Failed to send rejection email for review %s: %v", reviewCopy.ID, err)
		}
	}()
}

// ModerationReview joins a review with author and professional context for
// the admin queue.
type ModerationReview struct {
	models.Review
	Author       string               `json:"author"`
	Professional *models.Professional `json:"professional,omitempty"`
}

func (s *ModerationService) ListReviews(ctx context.Context, status string) ([]ModerationReview, error) {
	reviews, err := s.reviews.GetAllReviews(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]ModerationReview, 0, len(reviews))
	for _, r := range reviews {
		if status != "" && status != "all" && string(r.Status) != status {
			continue
		}
		item := ModerationReview{Review: r, Author: "Unknown"}
		if author, err := s.users.GetUserByID(ctx, r.UserID); err == nil {
			item.Author = author.Username
		}
		if prof, err := s.professionals.GetProfessional(ctx, r.ProfessionalID); err == nil {
			item.Professional = prof
		}
		results = append(results, item)
	}
	return results, nil
}

func (s *ModerationService) DenialReasons() []models.DenialReason {
	return models.DenialReasons
}

type DashboardStats struct {
	TotalUsers         int `json:"totalUsers"`
	TotalProfessionals int `json:"totalProfessionals"`
	TotalReviews       int `json:"totalReviews"`
	PendingReviews     int `json:"pendingReviews"`
	PendingFlags       int `json:"pendingFlags"`
	RecentActivity     struct {
		NewUsers   int `json:"newUsers"`
		NewReviews int `json:"newReviews"`
	} `json:"recentActivity"`
}

func (s *ModerationService) Stats(ctx context.Context) (*DashboardStats, error) {
	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	professionals, err := s.professionals.GetAllProfessionals(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.GetAllReviews(ctx)
	if err != nil {
		return nil, err
	}
	flags, err := s.flags.GetAllFlags(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalUsers:         len(users),
		TotalProfessionals: len(professionals),
		TotalReviews:       len(reviews),
	}

	weekAgo := time.Now().Add(-7 * 24 * time.Hour)
	for _, r := range reviews {
		if r.Status == models.StatusPending {
			stats.PendingReviews++
		}
		if r.CreatedAt.After(weekAgo) {
			stats.RecentActivity.NewReviews++
		}
	}
	for _, f := range flags {
		if f.Status == models.FlagPending {
			stats.PendingFlags++
		}
	}
	for _, u := range users {
		if u.CreatedAt.After(weekAgo) {
			stats.RecentActivity.NewUsers++
		}
	}

	return stats, nil
}
