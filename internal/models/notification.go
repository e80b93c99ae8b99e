package models

import "time"

type NotificationType string

const (
	TypeReviewApproved NotificationType = "review_approved"
	TypeReviewRejected NotificationType = "review_rejected"
)

type Notification struct {
	ID               string           `bson:"_id,omitempty" json:"id"`
	UserID           string           `bson:"user_id"       json:"userId"`
	Type             NotificationType `bson:"type"          json:"type"`
	Title            string           `bson:"title"         json:"title"`
	Message          string           `bson:"message"       json:"message"`
	ReviewID         string           `bson:"review_id,omitempty" json:"reviewId,omitempty"`
	ProfessionalID   string           `bson:"professional_id,omitempty" json:"professionalId,omitempty"`
	ProfessionalName string           `bson:"professional_name,omitempty" json:"professionalName,omitempty"`
	DenialReason     string           `bson:"denial_reason,omitempty" json:"denialReason,omitempty"`
	DenialDetails    string           `bson:"denial_details,omitempty" json:"denialDetails,omitempty"`
	Read             bool             `bson:"read"          json:"read"`
	CreatedAt        time.Time        `bson:"created_at"    json:"createdAt"`
}
