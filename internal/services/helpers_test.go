package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"industry-lens/internal/models"
	"industry-lens/internal/repository"
	"industry-lens/internal/utils"
)

// recordingMailer captures outgoing emails. Sends happen on goroutines, so
// assertions go through the mutex-guarded counters with require.Eventually.
type recordingMailer struct {
	mu       sync.Mutex
	welcome  []string
	approved []string
	rejected []string
	resets   []string
}

func (m *recordingMailer) SendWelcomeEmail(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcome = append(m.welcome, user.Email)
	return nil
}

func (m *recordingMailer) SendReviewApprovedEmail(user *models.User, review *models.Review, prof *models.Professional) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.approved = append(m.approved, review.ID)
	return nil
}

func (m *recordingMailer) SendReviewRejectedEmail(user *models.User, review *models.Review, prof *models.Professional, reason, details string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, review.ID)
	return nil
}

func (m *recordingMailer) SendPasswordResetEmail(user *models.User, resetToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, resetToken)
	return nil
}

func (m *recordingMailer) approvedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.approved)
}

func (m *recordingMailer) rejectedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rejected)
}

func (m *recordingMailer) welcomeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.welcome)
}

func (m *recordingMailer) lastResetToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.resets) == 0 {
		return ""
	}
	return m.resets[len(m.resets)-1]
}

type testEnv struct {
	store         *repository.MemoryStore
	mailer        *recordingMailer
	jwt           *utils.JWTUtil
	reviews       *ReviewService
	moderation    *ModerationService
	flags         *FlagService
	notifications *NotificationService
	auth          *AuthService
	users         *UserService
	professionals *ProfessionalService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := repository.NewMemoryStore()
	mailer := &recordingMailer{}
	jwtUtil := utils.NewJWTUtil("test-secret")
	locks := utils.NewKeyedMutex()
	stats := NewStatsUpdater(store, store)

	notifications := NewNotificationService(store, nil)
	reviews := NewReviewService(store, store, store, stats, locks)
	moderation := NewModerationService(store, store, store, store, notifications, mailer, stats, locks)
	flags := NewFlagService(store, store, store, reviews, locks)
	auth := NewAuthService(store, jwtUtil, mailer, nil)
	users := NewUserService(store, store, mailer, stats, locks)
	professionals := NewProfessionalService(store, store, store, utils.NewTMDBClient(""))

	return &testEnv{
		store:         store,
		mailer:        mailer,
		jwt:           jwtUtil,
		reviews:       reviews,
		moderation:    moderation,
		flags:         flags,
		notifications: notifications,
		auth:          auth,
		users:         users,
		professionals: professionals,
	}
}

func (e *testEnv) seedUser(t *testing.T, id, email, username string, role models.Role) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	user := &models.User{
		ID:            id,
		Email:         email,
		Username:      username,
		Password:      string(hashed),
		Role:          role,
		AgreedToTerms: true,
		CreatedAt:     time.Now(),
	}
	if err := e.store.CreateUser(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	return user
}

func (e *testEnv) seedProfessional(t *testing.T, id, name, department string) *models.Professional {
	t.Helper()
	prof := &models.Professional{
		ID:         id,
		Name:       name,
		Department: department,
		AddedBy:    "user-1",
		CreatedAt:  time.Now(),
	}
	if err := e.store.CreateProfessional(context.Background(), prof); err != nil {
		t.Fatal(err)
	}
	return prof
}

func (e *testEnv) submitReview(t *testing.T, userID, professionalID string, rating int) *models.Review {
	t.Helper()
	review, err := e.reviews.CreateReview(context.Background(), userID, CreateReviewInput{
		ProfessionalID: professionalID,
		Rating:         rating,
		Title:          "Solid collaborator",
		Content:        "Worked together on a feature, clear communication throughout.",
	})
	if err != nil {
		t.Fatal(err)
	}
	return review
}
