package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"industry-lens/internal/models"
)

func seedNotification(t *testing.T, env *testEnv, userID, title string, createdAt time.Time) *models.Notification {
	t.Helper()
	notif := &models.Notification{
		UserID:  userID,
		Type:    models.TypeReviewApproved,
		Title:   title,
		Message: "message",
	}
	require.NoError(t, env.notifications.CreateModerationNotification(context.Background(), notif))
	if !createdAt.IsZero() {
		notif.CreatedAt = createdAt
		require.NoError(t, env.store.CreateNotification(context.Background(), notif))
	}
	return notif
}

func TestNotificationsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	seedNotification(t, env, "user-1", "older", now.Add(-time.Hour))
	seedNotification(t, env, "user-1", "newer", now)
	seedNotification(t, env, "user-2", "foreign", now)

	items, err := env.notifications.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "newer", items[0].Title)
	assert.Equal(t, "older", items[1].Title)
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	env := newTestEnv(t)
	notif := seedNotification(t, env, "user-1", "first", time.Time{})
	seedNotification(t, env, "user-1", "second", time.Time{})

	count, err := env.notifications.UnreadCount(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	read, err := env.notifications.MarkRead(context.Background(), notif.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, read.Read)

	count, err = env.notifications.UnreadCount(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Marking an already read notification again is harmless.
	_, err = env.notifications.MarkRead(context.Background(), notif.ID, "user-1")
	assert.NoError(t, err)
}

func TestNotificationOwnership(t *testing.T) {
	env := newTestEnv(t)
	notif := seedNotification(t, env, "user-1", "private", time.Time{})

	_, err := env.notifications.MarkRead(context.Background(), notif.ID, "user-2")
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = env.notifications.Delete(context.Background(), notif.ID, "user-2")
	assert.ErrorIs(t, err, models.ErrNotFound)

	// The owner can delete it.
	require.NoError(t, env.notifications.Delete(context.Background(), notif.ID, "user-1"))

	items, err := env.notifications.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMarkAllRead(t *testing.T) {
	env := newTestEnv(t)
	seedNotification(t, env, "user-1", "first", time.Time{})
	seedNotification(t, env, "user-1", "second", time.Time{})
	seedNotification(t, env, "user-2", "foreign", time.Time{})

	require.NoError(t, env.notifications.MarkAllRead(context.Background(), "user-1"))

	count, err := env.notifications.UnreadCount(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = env.notifications.UnreadCount(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
