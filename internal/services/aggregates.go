package services

import (
	"context"
	"errors"

	"industry-lens/internal/models"
	"industry-lens/internal/repository"
)

// StatsUpdater recomputes a professional's aggregate rating as the mean over
// currently approved reviews. Every mutation that can change the approved set
// (create is exempt: new reviews start pending) must run this afterwards,
// while still holding the professional's lock.
type StatsUpdater struct {
	reviews       repository.ReviewRepository
	professionals repository.ProfessionalRepository
}

func NewStatsUpdater(reviews repository.ReviewRepository, professionals repository.ProfessionalRepository) *StatsUpdater {
	return &StatsUpdater{reviews: reviews, professionals: professionals}
}

func (s *StatsUpdater) Recompute(ctx context.Context, professionalID string) error {
	approved, err := s.reviews.GetApprovedReviewsByProfessional(ctx, professionalID)
	if err != nil {
		return err
	}

	total := len(approved)
	average := 0.0
	if total > 0 {
		sum := 0
		for _, r := range approved {
			sum += r.Rating
		}
		average = float64(sum) / float64(total)
	}

	err = s.professionals.UpdateProfessionalStats(ctx, professionalID, total, average)
	if errors.Is(err, models.ErrNotFound) {
		// Professional already deleted; nothing to update.
		return nil
	}
	return err
}
