package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"industry-lens/internal/models"
)

func TestSeedDemoData(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, SeedDemoData(context.Background(), store))

	user, err := store.FindUserByEmail(context.Background(), "test@industrylens.com")
	require.NoError(t, err)
	assert.NoError(t, user.ComparePassword("testpass123"))
	assert.Error(t, user.ComparePassword("wrong"))

	admin, err := store.FindUserByEmail(context.Background(), "admin@industrylens.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	count, err := store.CountUsersByRole(context.Background(), models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	approved, err := store.GetApprovedReviewsByProfessional(context.Background(), "prof-001")
	require.NoError(t, err)
	assert.Len(t, approved, 1)

	flags, err := store.GetAllFlags(context.Background())
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, models.FlagPending, flags[0].Status)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	prof := &models.Professional{ID: "p1", Name: "Original", Department: "Director", CreatedAt: time.Now()}
	require.NoError(t, store.CreateProfessional(context.Background(), prof))

	got, err := store.GetProfessional(context.Background(), "p1")
	require.NoError(t, err)
	got.Name = "Mutated"

	again, err := store.GetProfessional(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Name)
}

func TestAdjustReviewCountFloorsAtZero(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.CreateUser(context.Background(), &models.User{ID: "u1", CreatedAt: time.Now()}))

	require.NoError(t, store.AdjustReviewCount(context.Background(), "u1", -5))

	user, err := store.GetUserByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, user.ReviewCount)

	assert.ErrorIs(t, store.AdjustReviewCount(context.Background(), "missing", 1), models.ErrNotFound)
}

func TestDeleteReviewsByUser(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	reviews := []models.Review{
		{ID: "r1", UserID: "u1", ProfessionalID: "p1", Rating: 5, Title: "a", Content: "b", Status: models.StatusApproved, CreatedAt: now},
		{ID: "r2", UserID: "u1", ProfessionalID: "p2", Rating: 3, Title: "a", Content: "b", Status: models.StatusPending, CreatedAt: now},
		{ID: "r3", UserID: "u2", ProfessionalID: "p1", Rating: 4, Title: "a", Content: "b", Status: models.StatusApproved, CreatedAt: now},
	}
	for i := range reviews {
		require.NoError(t, store.CreateReview(context.Background(), &reviews[i]))
	}

	deleted, err := store.DeleteReviewsByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, deleted, 2)

	remaining, err := store.GetAllReviews(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "r3", remaining[0].ID)
}

func TestSearchProfessionalsMatchesIMDBLink(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.CreateProfessional(context.Background(), &models.Professional{
		ID: "p1", Name: "Sarah Mitchell", Department: "Director",
		IMDBLink: "https://www.imdb.com/name/nm0000138", CreatedAt: time.Now(),
	}))

	results, err := store.SearchProfessionals(context.Background(), "nm0000138", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].ID)
}
