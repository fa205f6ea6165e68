package model

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity holds the credentials of a user; the profile carries the rest.
type Identity struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
}

func (Identity) TableName() string {
	return "identities"
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Language string `json:"language" validate:"omitempty,min=2,max=8"`
}

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresAt   int64    `json:"expires_at"`
	Profile     *Profile `json:"profile"`
}

// SessionClaims are the JWT claims of an access token.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// Session is what the auth middleware stores in the request context.
type Session struct {
	UserID    uuid.UUID
	TokenID   string
	ExpiresAt int64
}

type ContextKey string

const (
	SessionKey ContextKey = "session"
)
