package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"`
}

type Claims struct {
	jwt.RegisteredClaims
	UserID        uuid.UUID `json:"uid"`
	Email         string    `json:"email"`
	Name          string    `json:"name,omitempty"`
	Role          Role      `json:"role,omitempty"`
	EmailVerified bool      `json:"email_verified,omitempty"`
	TokenType     string    `json:"type"`
}

// RefreshToken is the server-side record of an issued refresh token.
// Only the SHA-256 hash of the raw token is stored; the raw value stays
// with the client. Revocation on password reset is enforced against
// these rows, not against the JWT signature.
type RefreshToken struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	TokenHash string    `json:"-" db:"token_hash"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
