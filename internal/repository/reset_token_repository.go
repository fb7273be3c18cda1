package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/makeityours/collegevaani-v0paid-sub001/internal/domain"
)

type PasswordResetTokenRepository interface {
	// Issue invalidates all prior unused tokens for the user and inserts
	// the new row in one transaction, so two simultaneously valid tokens
	// can never exist for a user.
	Issue(ctx context.Context, token *domain.PasswordResetToken) error

	// GetActive returns the unused token row matching (userID, tokenHash),
	// or (nil, nil) if none exists. Read-only; expiry is not checked here.
	GetActive(ctx context.Context, userID uuid.UUID, tokenHash string) (*domain.PasswordResetToken, error)

	// Consume atomically marks the matching unused token used, updates the
	// user's password hash, and revokes all of the user's refresh tokens.
	// Returns domain.NotFoundError when no unused row matches and
	// domain.ValidationError when the row matched but has expired; in
	// both cases nothing is written.
	Consume(ctx context.Context, userID uuid.UUID, tokenHash, newPasswordHash string) error

	DeleteExpired(ctx context.Context) error
}
