package models

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthenticated    = errors.New("invalid credentials")
	ErrUserBlocked        = errors.New("account has been suspended")
	ErrValidation         = errors.New("validation error")
	ErrDuplicate          = errors.New("duplicate")
	ErrDuplicateReview    = errors.New("you have already reviewed this professional")
	ErrReviewsDisabled    = errors.New("reviews are currently disabled for this professional")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrLastAdmin          = errors.New("cannot delete the last admin")
	ErrFeatureUnavailable = errors.New("feature unavailable")
)
