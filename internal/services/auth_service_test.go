package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"industry-lens/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.auth.Register(context.Background(), RegisterInput{
		Email:         "new@example.com",
		Username:      "newcomer",
		Password:      "supersecret1",
		AgreedToTerms: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, models.RoleUser, result.User.Role)

	claims, err := env.jwt.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "newcomer", claims.Username)

	require.Eventually(t, func() bool { return env.mailer.welcomeCount() == 1 }, time.Second, 10*time.Millisecond)

	login, err := env.auth.Login(context.Background(), LoginInput{Email: "new@example.com", Password: "supersecret1"})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
}

func TestRegisterRequiresTerms(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(context.Background(), RegisterInput{
		Email:    "new@example.com",
		Username: "newcomer",
		Password: "supersecret1",
	})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "taken@example.com", "taken", models.RoleUser)

	_, err := env.auth.Register(context.Background(), RegisterInput{
		Email:         "taken@example.com",
		Username:      "somebody",
		Password:      "supersecret1",
		AgreedToTerms: true,
	})
	assert.ErrorIs(t, err, models.ErrDuplicate)

	_, err = env.auth.Register(context.Background(), RegisterInput{
		Email:         "fresh@example.com",
		Username:      "taken",
		Password:      "supersecret1",
		AgreedToTerms: true,
	})
	assert.ErrorIs(t, err, models.ErrDuplicate)
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)

	_, err := env.auth.Login(context.Background(), LoginInput{Email: "user@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	_, err = env.auth.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	user.IsBlocked = true
	require.NoError(t, env.store.UpdateUser(context.Background(), user))

	_, err = env.auth.Login(context.Background(), LoginInput{Email: "user@example.com", Password: "password123"})
	assert.ErrorIs(t, err, models.ErrUserBlocked)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedUser(t, "user-2", "other@example.com", "other", models.RoleUser)

	bio := "Gaffer, 12 years in the business."
	updated, err := env.auth.UpdateProfile(context.Background(), "user-1", ProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)

	taken := "other"
	_, err = env.auth.UpdateProfile(context.Background(), "user-1", ProfileUpdate{Username: &taken})
	assert.ErrorIs(t, err, models.ErrDuplicate)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)

	err := env.auth.ChangePassword(context.Background(), "user-1", "wrong", "newpassword1")
	assert.ErrorIs(t, err, models.ErrValidation)

	require.NoError(t, env.auth.ChangePassword(context.Background(), "user-1", "password123", "newpassword1"))

	_, err = env.auth.Login(context.Background(), LoginInput{Email: "user@example.com", Password: "newpassword1"})
	assert.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)

	// Unknown emails succeed silently.
	require.NoError(t, env.auth.RequestPasswordReset(context.Background(), "ghost@example.com"))

	require.NoError(t, env.auth.RequestPasswordReset(context.Background(), "user@example.com"))
	require.Eventually(t, func() bool { return env.mailer.lastResetToken() != "" }, time.Second, 10*time.Millisecond)
	token := env.mailer.lastResetToken()

	err := env.auth.ResetPassword(context.Background(), "user@example.com", "bogus", "freshpassword1")
	assert.ErrorIs(t, err, models.ErrValidation)

	require.NoError(t, env.auth.ResetPassword(context.Background(), "user@example.com", token, "freshpassword1"))

	_, err = env.auth.Login(context.Background(), LoginInput{Email: "user@example.com", Password: "freshpassword1"})
	assert.NoError(t, err)

	// The token is single-use.
	err = env.auth.ResetPassword(context.Background(), "user@example.com", token, "anotherpassword1")
	assert.ErrorIs(t, err, models.ErrValidation)
}
