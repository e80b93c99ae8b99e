package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type JWTUtil struct {
	secret string
}

func NewJWTUtil(secret string) *JWTUtil {
	return &JWTUtil{secret: secret}
}

// Claims carried by an Industry Lens access token.
type TokenClaims struct {
	UserID   string
	Email    string
	Username string
	Role     string
}

func (j *JWTUtil) GenerateToken(userID, email, username, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"email":    email,
		"username": username,
		"role":     role,
		"exp":      now.Add(24 * time.Hour).Unix(),
		"iat":      now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secret))
}

func (j *JWTUtil) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, errors.New("invalid token claims")
	}

	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &TokenClaims{
		UserID:   userID,
		Email:    email,
		Username: username,
		Role:     role,
	}, nil
}

func (j *JWTUtil) IsTokenBlacklisted(ctx context.Context, tokenString string, redis *RedisClient) bool {
	if redis == nil {
		return false
	}
	var blacklisted bool
	err := redis.Get(ctx, fmt.Sprintf("blacklist:%s", tokenString), &blacklisted)
	return err == nil && blacklisted
}
