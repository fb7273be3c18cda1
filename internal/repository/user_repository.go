package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/makeityours/collegevaani-v0paid-sub001/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetByEmail returns (nil, nil) when no user exists, so callers can
	// stay silent about unknown addresses.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}
