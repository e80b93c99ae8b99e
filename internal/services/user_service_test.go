package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"industry-lens/internal/models"
)

func TestDeleteLastAdminRefused(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "admin-1", "admin@example.com", "admin", models.RoleAdmin)

	err := env.users.DeleteUser(context.Background(), "admin-1")
	assert.ErrorIs(t, err, models.ErrLastAdmin)

	// With a second admin around, deletion goes through.
	env.seedUser(t, "admin-2", "admin2@example.com", "admin2", models.RoleAdmin)
	assert.NoError(t, env.users.DeleteUser(context.Background(), "admin-1"))
}

func TestDemoteLastAdminRefused(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "admin-1", "admin@example.com", "admin", models.RoleAdmin)

	role := models.RoleUser
	_, err := env.users.UpdateUser(context.Background(), "admin-1", UserUpdate{Role: &role})
	assert.ErrorIs(t, err, models.ErrLastAdmin)
}

func TestBlockLastAdminRefused(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "admin-1", "admin@example.com", "admin", models.RoleAdmin)

	_, err := env.users.ToggleBlock(context.Background(), "admin-1")
	assert.ErrorIs(t, err, models.ErrLastAdmin)
}

func TestDeleteUserCascadesReviews(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "admin-1", "admin@example.com", "admin", models.RoleAdmin)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")
	env.seedProfessional(t, "prof-2", "Marcus Chen", "Producer")

	first := env.submitReview(t, "user-1", "prof-1", 5)
	second := env.submitReview(t, "user-1", "prof-2", 3)
	_, err := env.moderation.SetReviewStatus(context.Background(), first.ID, models.StatusApproved, "", "")
	require.NoError(t, err)
	_, err = env.moderation.SetReviewStatus(context.Background(), second.ID, models.StatusApproved, "", "")
	require.NoError(t, err)

	require.NoError(t, env.users.DeleteUser(context.Background(), "user-1"))

	_, err = env.store.GetUserByID(context.Background(), "user-1")
	assert.ErrorIs(t, err, models.ErrNotFound)

	reviews, err := env.store.GetReviewsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, reviews)

	// Every touched professional gets its aggregate recomputed.
	for _, id := range []string{"prof-1", "prof-2"} {
		prof, err := env.store.GetProfessional(context.Background(), id)
		require.NoError(t, err)
		assert.Zero(t, prof.AverageRating, id)
		assert.Zero(t, prof.TotalReviews, id)
	}
}

func TestToggleBlock(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)

	blocked, err := env.users.ToggleBlock(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked)

	unblocked, err := env.users.ToggleBlock(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, unblocked.IsBlocked)
}

func TestAdminCreateUser(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)

	created, err := env.users.CreateUser(context.Background(), CreateUserInput{
		Email:    "mod@example.com",
		Username: "moderator",
		Password: "supersecret1",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, created.Role)

	_, err = env.users.CreateUser(context.Background(), CreateUserInput{
		Email:    "user@example.com",
		Username: "duplicate",
		Password: "supersecret1",
	})
	assert.ErrorIs(t, err, models.ErrDuplicate)

	_, err = env.users.CreateUser(context.Background(), CreateUserInput{
		Email:    "weird@example.com",
		Username: "weirdrole",
		Password: "supersecret1",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestUpdateUserUniqueness(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedUser(t, "user-2", "other@example.com", "other", models.RoleUser)

	email := "other@example.com"
	_, err := env.users.UpdateUser(context.Background(), "user-1", UserUpdate{Email: &email})
	assert.ErrorIs(t, err, models.ErrDuplicate)

	fresh := "fresh@example.com"
	updated, err := env.users.UpdateUser(context.Background(), "user-1", UserUpdate{Email: &fresh})
	require.NoError(t, err)
	assert.Equal(t, fresh, updated.Email)
}

func TestAdminResetPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)

	require.NoError(t, env.users.ResetPassword(context.Background(), "user-1"))
	require.Eventually(t, func() bool { return env.mailer.lastResetToken() != "" }, time.Second, 10*time.Millisecond)

	user, err := env.store.GetUserByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, env.mailer.lastResetToken(), user.ResetToken)
	assert.True(t, user.ResetExpires.After(time.Now()))

	err = env.users.ResetPassword(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetUserWithReviews(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")
	env.submitReview(t, "user-1", "prof-1", 4)

	details, err := env.users.GetUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "reviewer", details.User.Username)
	assert.Len(t, details.Reviews, 1)
}
