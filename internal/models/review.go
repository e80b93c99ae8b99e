package models

import (
	"fmt"
	"strings"
	"time"

	"industry-lens/internal/utils"
)

type ReviewStatus string

const (
	StatusPending  ReviewStatus = "pending"
	StatusApproved ReviewStatus = "approved"
	StatusRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Review struct {
	ID                  string       `bson:"_id,omitempty"   json:"id"`
	ProfessionalID      string       `bson:"professional_id" json:"professionalId" validate:"required"`
	UserID              string       `bson:"user_id"         json:"userId,omitempty"`
	Rating              int          `bson:"rating"          json:"rating" validate:"required,min=1,max=5"`
	Title               string       `bson:"title"           json:"title" validate:"required"`
	Content             string       `bson:"content"         json:"content" validate:"required"`
	ProjectContext      string       `bson:"project_context,omitempty" json:"projectContext,omitempty"`
	WorkingRelationship string       `bson:"working_relationship,omitempty" json:"workingRelationship,omitempty"`
	Status              ReviewStatus `bson:"status"          json:"status"`
	HelpfulCount        int          `bson:"helpful_count"   json:"helpfulCount"`
	FlagCount           int          `bson:"flag_count"      json:"flagCount"`
	DenialReason        string       `bson:"denial_reason,omitempty" json:"denialReason,omitempty"`
	DenialDetails       string       `bson:"denial_details,omitempty" json:"denialDetails,omitempty"`
	CreatedAt           time.Time    `bson:"created_at"      json:"createdAt"`
	UpdatedAt           time.Time    `bson:"updated_at"      json:"updatedAt"`
}

func (r Review) Validate() error {
	validate := utils.GetValidator()
	err := validate.Struct(r)
	if err != nil {
		errs := utils.ParseErrors(err)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, " // "))
	}

	return nil
}

// ReviewUpdate carries the optional fields of a partial review edit. Nil means
// "leave unchanged".
type ReviewUpdate struct {
	Rating              *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Title               *string `json:"title"`
	Content             *string `json:"content"`
	ProjectContext      *string `json:"projectContext"`
	WorkingRelationship *string `json:"workingRelationship"`
}

// DenialReason is a catalog entry admins pick from when rejecting a review.
type DenialReason struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var DenialReasons = []DenialReason{
	{ID: "tos-violation", Label: "Violates Terms of Service"},
	{ID: "defamatory", Label: "Contains potentially defamatory content"},
	{ID: "confidential", Label: "Contains confidential/proprietary information"},
	{ID: "hearsay", Label: "Based on hearsay, not first-hand experience"},
	{ID: "insufficient", Label: "Insufficient detail or context"},
	{ID: "harassment", Label: "Contains harassment or personal attacks"},
	{ID: "false-claims", Label: "Contains unverifiable claims"},
	{ID: "spam", Label: "Spam or promotional content"},
	{ID: "other", Label: "Other (see details)"},
}
