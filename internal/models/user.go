package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Email         string    `bson:"email"         json:"email"`
	Username      string    `bson:"username"      json:"username"`
	Password      string    `bson:"password"      json:"-"`
	Role          Role      `bson:"role"          json:"role"`
	Bio           string    `bson:"bio"           json:"bio"`
	IsBlocked     bool      `bson:"is_blocked"    json:"isBlocked"`
	AgreedToTerms bool      `bson:"agreed_to_terms" json:"agreedToTerms"`
	ReviewCount   int       `bson:"review_count"  json:"reviewCount"`
	ResetToken    string    `bson:"reset_token,omitempty" json:"-"`
	ResetExpires  time.Time `bson:"reset_expires,omitempty" json:"-"`
	CreatedAt     time.Time `bson:"created_at"    json:"createdAt"`
}

func (u *User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// PublicUser is the safe subset returned by the API.
type PublicUser struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Role        Role      `json:"role"`
	Bio         string    `json:"bio"`
	IsBlocked   bool      `json:"isBlocked"`
	ReviewCount int       `json:"reviewCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		Role:        u.Role,
		Bio:         u.Bio,
		IsBlocked:   u.IsBlocked,
		ReviewCount: u.ReviewCount,
		CreatedAt:   u.CreatedAt,
	}
}
