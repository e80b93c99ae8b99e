package utils

import (
	"context"
	"log"
)

const ModerationEventsChannel = "moderation_events"

// ModerationEventPayload is published to Redis whenever a review receives its
// first moderation decision. Downstream consumers (dashboards, digests) are
// free to ignore it; publishing is best-effort.
type ModerationEventPayload struct {
	UserID           string `json:"user_id"`
	ReviewID         string `json:"review_id"`
	ProfessionalID   string `json:"professional_id"`
	ProfessionalName string `json:"professional_name"`
	Status           string `json:"status"`
	Title            string `json:"title"`
	Message          string `json:"message"`
}

func PublishModerationEvent(ctx context.Context, rdb *RedisClient, payload ModerationEventPayload) {
	if rdb == nil {
		return
	}
	if err := rdb.Publish(ctx, ModerationEventsChannel, payload); err != nil {
		log.Printf("Failed to publish moderation event: %v", err)
	}
}
