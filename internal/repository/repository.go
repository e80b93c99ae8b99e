package repository

import (
	"context"

	"industry-lens/internal/models"
)

// Entities reference each other by id only; a lookup that misses returns
// models.ErrNotFound and callers decide whether that is fatal or just an
// anonymized/unknown reference.

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
	CountUsersByRole(ctx context.Context, role models.Role) (int, error)
	AdjustReviewCount(ctx context.Context, id string, delta int) error
}

type ProfessionalRepository interface {
	CreateProfessional(ctx context.Context, prof *models.Professional) error
	GetProfessional(ctx context.Context, id string) (*models.Professional, error)
	GetAllProfessionals(ctx context.Context) ([]models.Professional, error)
	UpdateProfessional(ctx context.Context, prof *models.Professional) error
	SearchProfessionals(ctx context.Context, query, department string) ([]models.Professional, error)
	FindProfessionalByNameAndDepartment(ctx context.Context, name, department string) (*models.Professional, error)
	UpdateProfessionalStats(ctx context.Context, id string, totalReviews int, averageRating float64) error
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReview(ctx context.Context, id string) (*models.Review, error)
	GetAllReviews(ctx context.Context) ([]models.Review, error)
	UpdateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, id string) error
	GetReviewsByProfessional(ctx context.Context, professionalID string) ([]models.Review, error)
	GetApprovedReviewsByProfessional(ctx context.Context, professionalID string) ([]models.Review, error)
	GetReviewsByUser(ctx context.Context, userID string) ([]models.Review, error)
	FindReviewByProfessionalAndUser(ctx context.Context, professionalID, userID string) (*models.Review, error)
	DeleteReviewsByUser(ctx context.Context, userID string) ([]models.Review, error)
}

type FlagRepository interface {
	CreateFlag(ctx context.Context, flag *models.Flag) error
	GetFlag(ctx context.Context, id string) (*models.Flag, error)
	GetAllFlags(ctx context.Context) ([]models.Flag, error)
	UpdateFlag(ctx context.Context, flag *models.Flag) error
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	ListNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error)
	CountUnreadNotifications(ctx context.Context, userID string) (int, error)
	MarkNotificationRead(ctx context.Context, id, userID string) (*models.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, id, userID string) error
}
