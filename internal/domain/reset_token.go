package domain

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use, time-boxed credential recovery
// token. Token holds the salted hash of the raw value, never the raw
// value itself. At most one unused token exists per user: issuing a new
// one marks all prior unused tokens used.
type PasswordResetToken struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	Token     string     `json:"-" db:"token"`
	IsUsed    bool       `json:"is_used" db:"is_used"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty" db:"used_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
