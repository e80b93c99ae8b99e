package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"industry-lens/internal/models"
)

func TestFlagReviewIncrementsCounter(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedUser(t, "user-2", "other@example.com", "other", models.RoleUser)
	env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")
	review := env.submitReview(t, "user-1", "prof-1", 1)

	flag, err := env.flags.FlagReview(context.Background(), review.ID, "user-2", "harassment")
	require.NoError(t, err)
	assert.Equal(t, models.FlagPending, flag.Status)
	assert.Equal(t, review.ID, flag.ReviewID)

	stored, err := env.store.GetReview(context.Background(), review.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.FlagCount)
}

func TestFlagUnknownReview(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)

	_, err := env.flags.FlagReview(context.Background(), "missing", "user-1", "spam")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestResolveFlagDismissKeepsReview(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedUser(t, "user-2", "other@example.com", "other", models.RoleUser)
	env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")
	review := env.submitReview(t, "user-1", "prof-1", 1)

	flag, err := env.flags.FlagReview(context.Background(), review.ID, "user-2", "spam")
	require.NoError(t, err)

	resolved, err := env.flags.ResolveFlag(context.Background(), flag.ID, models.FlagDismissed, models.FlagActionDismiss)
	require.NoError(t, err)
	assert.Equal(t, models.FlagDismissed, resolved.Status)

	_, err = env.store.GetReview(context.Background(), review.ID)
	assert.NoError(t, err)
}

func TestResolveFlagRemoveGoesThroughDeletePath(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedUser(t, "user-2", "other@example.com", "other", models.RoleUser)
	env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")
	review := env.submitReview(t, "user-1", "prof-1", 5)

	_, err := env.moderation.SetReviewStatus(context.Background(), review.ID, models.StatusApproved, "", "")
	require.NoError(t, err)

	flag, err := env.flags.FlagReview(context.Background(), review.ID, "user-2", "defamatory")
	require.NoError(t, err)

	resolved, err := env.flags.ResolveFlag(context.Background(), flag.ID, models.FlagResolved, models.FlagActionRemove)
	require.NoError(t, err)
	assert.Equal(t, models.FlagResolved, resolved.Status)

	_, err = env.store.GetReview(context.Background(), review.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Removal recomputes the aggregate and drops the author's counter.
	prof, err := env.store.GetProfessional(context.Background(), "prof-1")
	require.NoError(t, err)
	assert.Zero(t, prof.AverageRating)
	assert.Zero(t, prof.TotalReviews)

	author, err := env.store.GetUserByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, author.ReviewCount)
}

func TestResolveFlagRemoveToleratesDeletedReview(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedUser(t, "user-2", "other@example.com", "other", models.RoleUser)
	env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")
	review := env.submitReview(t, "user-1", "prof-1", 5)

	flag, err := env.flags.FlagReview(context.Background(), review.ID, "user-2", "spam")
	require.NoError(t, err)

	// Author deletes their own review before the admin gets to the flag.
	require.NoError(t, env.reviews.DeleteReview(context.Background(), review.ID, "user-1", false))

	resolved, err := env.flags.ResolveFlag(context.Background(), flag.ID, models.FlagResolved, models.FlagActionRemove)
	require.NoError(t, err)
	assert.Equal(t, models.FlagResolved, resolved.Status)
}

func TestResolveFlagRejectsUnknownAction(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedUser(t, "user-2", "other@example.com", "other", models.RoleUser)
	env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")
	review := env.submitReview(t, "user-1", "prof-1", 5)

	flag, err := env.flags.FlagReview(context.Background(), review.ID, "user-2", "spam")
	require.NoError(t, err)

	_, err = env.flags.ResolveFlag(context.Background(), flag.ID, models.FlagResolved, "escalate")
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
}

func TestListFlagsJoinsContext(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user-1", "user@example.com", "reviewer", models.RoleUser)
	env.seedUser(t, "user-2", "other@example.com", "other", models.RoleUser)
	env.seedProfessional(t, "prof-1", "Sarah Mitchell", "Director")
	review := env.submitReview(t, "user-1", "prof-1", 1)

	_, err := env.flags.FlagReview(context.Background(), review.ID, "user-2", "spam")
	require.NoError(t, err)

	flags, err := env.flags.ListFlags(context.Background())
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, "other", flags[0].Reporter)
	require.NotNil(t, flags[0].Review)
	assert.Equal(t, review.ID, flags[0].Review.ID)
}
