package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"industry-lens/internal/models"
)

func TestCreateReviewStartsPending(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")

	review := env.submitReview(t, "user-1", "prof-1", 5)

	assert.Equal(t, models.StatusPending, review.Status)
	assert.NotEmpty(t, review.ID)

	// A pending review must not move the aggregate.
	prof, err := env.store.GetProfessional(context.Background(), "prof-1")
	require.NoError(t, err)
	assert.Zero(t, prof.AverageRating)
	assert.Zero(t, prof.TotalReviews)

	user, err := env.store.GetUserByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ReviewCount)
}

func TestCreateReviewRejectsDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")
	env.submitReview(t, "user-1", "prof-1", 5)

	_, err := env.reviews.CreateReview(context.Background(), "user-1", CreateReviewInput{
		ProfessionalID: "prof-1",
		Rating:         2,
		Title:          "Changed my mind",
		Content:        "Second attempt at reviewing the same person.",
	})
	assert.ErrorIs(t, err, models.ErrDuplicateReview)
}

func TestCreateReviewRespectsDisabledProfile(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	prof := env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")

	prof.ReviewsDisabled = true
	prof.ReviewsDisabledReason = "legal review"
	require.NoError(t, env.store.UpdateProfessional(context.Background(), prof))

	_, err := env.reviews.CreateReview(context.Background(), "user-1", CreateReviewInput{
		ProfessionalID: "prof-1",
		Rating:         4,
		Title:          "Great director",
		Content:        "Smooth shoot, well organized.",
	})
	assert.ErrorIs(t, err, models.ErrReviewsDisabled)
}

func TestCreateReviewUnknownProfessional(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)

	_, err := env.reviews.CreateReview(context.Background(), "user-1", CreateReviewInput{
		ProfessionalID: "missing",
		Rating:         4,
		Title:          "Great director",
		Content:        "Smooth shoot, well organized.",
	})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateReviewResetsModerationState(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")
	review := env.submitReview(t, "user-1", "prof-1", 5)

	_, err := env.moderation.SetReviewStatus(context.Background(), review.ID, models.StatusApproved, "", "")
	require.NoError(t, err)

	prof, err := env.store.GetProfessional(context.Background(), "prof-1")
	require.NoError(t, err)
	require.Equal(t, 5.0, prof.AverageRating)

	newRating := 3
	updated, err := env.reviews.UpdateReview(context.Background(), review.ID, "user-1", false, models.ReviewUpdate{Rating: &newRating})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, updated.Status)
	assert.Empty(t, updated.DenialReason)
	assert.Equal(t, 3, updated.Rating)

	// The edit pulled the review out of the approved set.
	prof, err = env.store.GetProfessional(context.Background(), "prof-1")
	require.NoError(t, err)
	assert.Zero(t, prof.AverageRating)
	assert.Zero(t, prof.TotalReviews)
}

func TestUpdateReviewAuthorization(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedUser(t, "user-2", "other@example.com", "other", models.RoleUser)
	env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")
	review := env.submitReview(t, "user-1", "prof-1", 5)

	title := "Hijacked"
	_, err := env.reviews.UpdateReview(context.Background(), review.ID, "user-2", false, models.ReviewUpdate{Title: &title})
	assert.ErrorIs(t, err, models.ErrForbidden)

	// Admins can edit anyone's review.
	_, err = env.reviews.UpdateReview(context.Background(), review.ID, "user-2", true, models.ReviewUpdate{Title: &title})
	assert.NoError(t, err)
}

func TestDeleteReviewRecomputesAggregate(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedUser(t, "user-2", "other@example.com", "other", models.RoleUser)
	env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")

	first := env.submitReview(t, "user-1", "prof-1", 5)
	second := env.submitReview(t, "user-2", "prof-1", 3)
	_, err := env.moderation.SetReviewStatus(context.Background(), first.ID, models.StatusApproved, "", "")
	require.NoError(t, err)
	_, err = env.moderation.SetReviewStatus(context.Background(), second.ID, models.StatusApproved, "", "")
	require.NoError(t, err)

	prof, err := env.store.GetProfessional(context.Background(), "prof-1")
	require.NoError(t, err)
	require.Equal(t, 4.0, prof.AverageRating)
	require.Equal(t, 2, prof.TotalReviews)

	require.NoError(t, env.reviews.DeleteReview(context.Background(), first.ID, "user-1", false))

	prof, err = env.store.GetProfessional(context.Background(), "prof-1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, prof.AverageRating)
	assert.Equal(t, 1, prof.TotalReviews)

	user, err := env.store.GetUserByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, user.ReviewCount)
}

func TestMarkHelpful(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")
	review := env.submitReview(t, "user-1", "prof-1", 5)

	count, err := env.reviews.MarkHelpful(context.Background(), review.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = env.reviews.MarkHelpful(context.Background(), review.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCheckReviewed(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")

	check, err := env.reviews.CheckReviewed(context.Background(), "prof-1", "user-1")
	require.NoError(t, err)
	assert.False(t, check.HasReviewed)

	review := env.submitReview(t, "user-1", "prof-1", 4)

	check, err = env.reviews.CheckReviewed(context.Background(), "prof-1", "user-1")
	require.NoError(t, err)
	assert.True(t, check.HasReviewed)
	assert.Equal(t, review.ID, check.ReviewID)
	assert.Equal(t, models.StatusPending, check.Status)
}

func TestMyReviewsIncludesProfessional(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")
	env.submitReview(t, "user-1", "prof-1", 4)

	mine, err := env.reviews.MyReviews(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Professional)
	assert.Equal(t, "Sarah Mitchell", mine[0].Professional.Name)
}
