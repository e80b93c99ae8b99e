package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"industry-lens/internal/models"
	"industry-lens/internal/repository"
	"industry-lens/internal/utils"
)

// UserService covers the admin side of account management. Self-service
// profile operations live in AuthService.
type UserService struct {
	users   repository.UserRepository
	reviews repository.ReviewRepository
	email   EmailService
	stats   *StatsUpdater
	locks   *utils.KeyedMutex
}

func NewUserService(users repository.UserRepository, reviews repository.ReviewRepository, email EmailService, stats *StatsUpdater, locks *utils.KeyedMutex) *UserService {
	return &UserService{users: users, reviews: reviews, email: email, stats: stats, locks: locks}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]models.PublicUser, 0, len(users))
	for i := range users {
		results = append(results, users[i].Public())
	}
	return results, nil
}

type CreateUserInput struct {
	Email    string      `json:"email" binding:"required,email"`
	Username string      `json:"username" binding:"required,min=3,max=30"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     models.Role `json:"role"`
}

func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", models.ErrValidation, input.Role)
	}

	if _, err := s.users.FindUserByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("%w: an account with this email already exists", models.ErrDuplicate)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.FindUserByUsername(ctx, input.Username); err == nil {
		return nil, fmt.Errorf("%w: this username is taken", models.ErrDuplicate)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:            uuid.NewString(),
		Email:         input.Email,
		Username:      input.Username,
		Password:      string(hashed),
		Role:          role,
		AgreedToTerms: true,
		CreatedAt:     time.Now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UserDetails pairs an account with every review it has written.
type UserDetails struct {
	User    models.PublicUser `json:"user"`
	Reviews []models.Review   `json:"reviews"`
}

func (s *UserService) GetUser(ctx context.Context, id string) (*UserDetails, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.GetReviewsByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UserDetails{User: user.Public(), Reviews: reviews}, nil
}

type UserUpdate struct {
	Email    *string      `json:"email"`
	Username *string      `json:"username"`
	Role     *models.Role `json:"role"`
	Bio      *string      `json:"bio"`
}

func (s *UserService) UpdateUser(ctx context.Context, id string, upd UserUpdate) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Email != nil && *upd.Email != user.Email {
		if existing, err := s.users.FindUserByEmail(ctx, *upd.Email); err == nil && existing.ID != id {
			return nil, fmt.Errorf("%w: an account with this email already exists", models.ErrDuplicate)
		} else if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		user.Email = *upd.Email
	}
	if upd.Username != nil && *upd.Username != user.Username {
		if existing, err := s.users.FindUserByUsername(ctx, *upd.Username); err == nil && existing.ID != id {
			return nil, fmt.Errorf("%w: this username is taken", models.ErrDuplicate)
		} else if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		user.Username = *upd.Username
	}
	if upd.Role != nil {
		if !upd.Role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", models.ErrValidation, *upd.Role)
		}
		if user.Role == models.RoleAdmin && *upd.Role != models.RoleAdmin {
			if err := s.ensureNotLastAdmin(ctx); err != nil {
				return nil, err
			}
		}
		user.Role = *upd.Role
	}
	if upd.Bio != nil {
		user.Bio = *upd.Bio
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ToggleBlock(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleAdmin && !user.IsBlocked {
		if err := s.ensureNotLastAdmin(ctx); err != nil {
			return nil, err
		}
	}
	user.IsBlocked = !user.IsBlocked
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account and all its reviews, then recomputes the
// aggregate of every professional the removed reviews pointed at. Deleting the
// last remaining admin is refused.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == models.RoleAdmin {
		if err := s.ensureNotLastAdmin(ctx); err != nil {
			return err
		}
	}

	removed, err := s.reviews.DeleteReviewsByUser(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}

	touched := make(map[string]bool)
	for _, r := range removed {
		touched[r.ProfessionalID] = true
	}
	for professionalID := range touched {
		unlock := s.locks.Lock(professionalID)
		if err := s.stats.Recompute(ctx, professionalID); err != nil {
			log.Printf("Failed to recompute stats for professional %s after user delete: %v", professionalID, err)
		}
		unlock()
	}

	return nil
}

// ResetPassword issues a one-hour reset token for an account on an admin's
// behalf and mails it to the user.
func (s *UserService) ResetPassword(ctx context.Context, id string) error {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	user.ResetToken = hex.EncodeToString(buf)
	user.ResetExpires = time.Now().Add(time.Hour)
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return err
	}

	userCopy := *user
	go func() {
		if err := s.email.SendPasswordResetEmail(&userCopy, userCopy.ResetToken); err != nil {
			log.Printf("Failed to send password reset email to %s: %v", userCopy.Email, err)
		}
	}()
	return nil
}

func (s *UserService) UserReviews(ctx context.Context, userID string) ([]models.Review, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.reviews.GetReviewsByUser(ctx, userID)
}

func (s *UserService) ensureNotLastAdmin(ctx context.Context) error {
	count, err := s.users.CountUsersByRole(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}
	if count <= 1 {
		return models.ErrLastAdmin
	}
	return nil
}
