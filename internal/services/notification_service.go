package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"industry-lens/internal/models"
	"industry-lens/internal/repository"
	"industry-lens/internal/utils"
)

type NotificationService struct {
	repo  repository.NotificationRepository
	redis *utils.RedisClient
}

func NewNotificationService(repo repository.NotificationRepository, redis *utils.RedisClient) *NotificationService {
	return &NotificationService{repo: repo, redis: redis}
}

// CreateModerationNotification stores an in-app notification and mirrors it to
// the Redis moderation channel. The publish is best-effort.
func (s *NotificationService) CreateModerationNotification(ctx context.Context, notif *models.Notification) error {
	notif.ID = uuid.NewString()
	notif.Read = false
	notif.CreatedAt = time.Now()

	if err := s.repo.CreateNotification(ctx, notif); err != nil {
		return err
	}

	go utils.PublishModerationEvent(context.Background(), s.redis, utils.ModerationEventPayload{
		UserID:           notif.UserID,
		ReviewID:         notif.ReviewID,
		ProfessionalID:   notif.ProfessionalID,
		ProfessionalName: notif.ProfessionalName,
		Status:           string(notif.Type),
		Title:            notif.Title,
		Message:          notif.Message,
	})

	return nil
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.repo.ListNotificationsByUser(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.CountUnreadNotifications(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	return s.repo.MarkNotificationRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllNotificationsRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.DeleteNotification(ctx, id, userID)
}
