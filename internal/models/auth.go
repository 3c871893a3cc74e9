package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims carries the authenticated identity inside access tokens.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	jwt.RegisteredClaims
}

// LoginRequest is the credential pair presented at login. The identifier
// may be the literal "admin", the literal "student", or a student's email
// or display name.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and resolved identity.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	User        User      `json:"user"`
}

// Session is the single persisted "current user" slot. It is overwritten
// on each login and cleared on logout.
type Session struct {
	UserID  string   `json:"userId"`
	Role    UserRole `json:"role"`
	LoginAt int64    `json:"loginAt"` // unix milliseconds
}
