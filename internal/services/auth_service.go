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

type AuthService struct {
	users repository.UserRepository
	jwt   *utils.JWTUtil
	email EmailService
	redis *utils.RedisClient
}

func NewAuthService(users repository.UserRepository, jwt *utils.JWTUtil, email EmailService, redis *utils.RedisClient) *AuthService {
	return &AuthService{users: users, jwt: jwt, email: email, redis: redis}
}

type RegisterInput struct {
	Email         string `json:"email" binding:"required,email"`
	Username      string `json:"username" binding:"required,min=3,max=30"`
	Password      string `json:"password" binding:"required,min=8"`
	AgreedToTerms bool   `json:"agreedToTerms"`
}

type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Register creates an account and issues a token. The welcome email goes out
// asynchronously so SMTP trouble never blocks signup.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if !input.AgreedToTerms {
		return nil, fmt.Errorf("%w: you must agree to the terms of service", models.ErrValidation)
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
		Role:          models.RoleUser,
		AgreedToTerms: true,
		CreatedAt:     time.Now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	userCopy := *user
	go func() {
		if err := s.email.SendWelcomeEmail(&userCopy); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", userCopy.Email, err)
		}
	}()

	return s.issueToken(user)
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.users.FindUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthenticated
		}
		return nil, err
	}
	if user.IsBlocked {
		return nil, models.ErrUserBlocked
	}
	if err := user.ComparePassword(input.Password); err != nil {
		return nil, models.ErrUnauthenticated
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.User) (*AuthResult, error) {
	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// GetProfile fetches the caller's account, via Redis when available.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	cacheKey := fmt.Sprintf("user:%s", userID)
	if s.redis != nil {
		var cached models.User
		if err := s.redis.Get(ctx, cacheKey, &cached); err == nil && cached.ID != "" {
			return &cached, nil
		}
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, cacheKey, user, 5*time.Minute); err != nil {
			log.Printf("Failed to cache user %s: %v", userID, err)
		}
	}
	return user, nil
}

type ProfileUpdate struct {
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil && *upd.Username != user.Username {
		if existing, err := s.users.FindUserByUsername(ctx, *upd.Username); err == nil && existing.ID != userID {
			return nil, fmt.Errorf("%w: this username is taken", models.ErrDuplicate)
		} else if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		user.Username = *upd.Username
	}
	if upd.Bio != nil {
		user.Bio = *upd.Bio
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	s.invalidateProfile(ctx, userID)
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.ComparePassword(current); err != nil {
		return fmt.Errorf("%w: current password is incorrect", models.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return err
	}
	s.invalidateProfile(ctx, userID)
	return nil
}

// RequestPasswordReset issues a one-hour reset token and mails it. An unknown
// email is reported as success so the endpoint cannot be used to probe for
// accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
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

func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: invalid or expired reset token", models.ErrValidation)
		}
		return err
	}
	if user.ResetToken == "" || user.ResetToken != token || time.Now().After(user.ResetExpires) {
		return fmt.Errorf("%w: invalid or expired reset token", models.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	user.ResetToken = ""
	user.ResetExpires = time.Time{}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return err
	}
	s.invalidateProfile(ctx, user.ID)
	return nil
}

// Logout blacklists the presented token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Set(ctx, fmt.Sprintf("blacklist:%s", token), true, 24*time.Hour)
}

func (s *AuthService) invalidateProfile(ctx context.Context, userID string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Delete(ctx, fmt.Sprintf("user:%s", userID)); err != nil {
		log.Printf("Failed to invalidate cached user %s: %v", userID, err)
	}
}
