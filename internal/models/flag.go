package models

import "time"

type FlagStatus string

const (
	FlagPending   FlagStatus = "pending"
	FlagResolved  FlagStatus = "resolved"
	FlagDismissed FlagStatus = "dismissed"
)

// Flag actions accepted by the admin resolution endpoint.
const (
	FlagActionDismiss = "dismiss"
	FlagActionRemove  = "remove"
)

type Flag struct {
	ID        string     `bson:"_id,omitempty" json:"id"`
	ReviewID  string     `bson:"review_id"     json:"reviewId"`
	UserID    string     `bson:"user_id"       json:"userId"`
	Reason    string     `bson:"reason"        json:"reason"`
	Status    FlagStatus `bson:"status"        json:"status"`
	CreatedAt time.Time  `bson:"created_at"    json:"createdAt"`
}
