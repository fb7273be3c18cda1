package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/makeityours/collegevaani-v0paid-sub001/internal/domain"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/repository"
)

type resetTokenRepository struct {
	db *sqlx.DB
}

// NewPasswordResetTokenRepository creates a new PostgreSQL password reset token repository
func NewPasswordResetTokenRepository(db *sqlx.DB) repository.PasswordResetTokenRepository {
	return &resetTokenRepository{db: db}
}

func (r *resetTokenRepository) Issue(ctx context.Context, token *domain.PasswordResetToken) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Invalidate prior unused tokens and insert the new one in the same
	// transaction, so concurrent issues for one user serialize on the
	// row locks and cannot leave two valid tokens behind.
	invalidate := `
		UPDATE password_reset_tokens
		SET is_used = true, used_at = $1
		WHERE user_id = $2 AND is_used = false`

	if _, err := tx.ExecContext(ctx, invalidate, time.Now(), token.UserID); err != nil {
		return fmt.Errorf("failed to invalidate prior reset tokens: %w", err)
	}

	insert := `
		INSERT INTO password_reset_tokens (
			id, user_id, token, is_used, expires_at, used_at, created_at
		) VALUES (
			:id, :user_id, :token, :is_used, :expires_at, :used_at, :created_at
		)`

	if _, err := tx.NamedExecContext(ctx, insert, token); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset token issue: %w", err)
	}

	return nil
}

func (r *resetTokenRepository) GetActive(ctx context.Context, userID uuid.UUID, tokenHash string) (*domain.PasswordResetToken, error) {
	query := `
		SELECT id, user_id, token, is_used, expires_at, used_at, created_at
		FROM password_reset_tokens
		WHERE user_id = $1 AND token = $2 AND is_used = false`

	var token domain.PasswordResetToken
	err := r.db.GetContext(ctx, &token, query, userID, tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}

	return &token, nil
}

func (r *resetTokenRepository) Consume(ctx context.Context, userID uuid.UUID, tokenHash, newPasswordHash string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Lock the candidate row so two concurrent resets with the same
	// token cannot both pass the is_used check.
	query := `
		SELECT id, user_id, token, is_used, expires_at, used_at, created_at
		FROM password_reset_tokens
		WHERE user_id = $1 AND token = $2 AND is_used = false
		FOR UPDATE`

	var token domain.PasswordResetToken
	err = tx.GetContext(ctx, &token, query, userID, tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("reset token")
		}
		return fmt.Errorf("failed to get reset token: %w", err)
	}

	now := time.Now()
	if token.Expired(now) {
		// Expired tokens stay unused; expiry alone makes them terminal.
		return domain.NewValidationError("reset token has expired")
	}

	consume := `
		UPDATE password_reset_tokens
		SET is_used = true, used_at = $1
		WHERE id = $2`

	if _, err := tx.ExecContext(ctx, consume, now, token.ID); err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	updatePassword := `
		UPDATE users
		SET password_hash = $1, updated_at = $2
		WHERE id = $3`

	result, err := tx.ExecContext(ctx, updatePassword, newPasswordHash, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("user")
	}

	revoke := `
		UPDATE refresh_tokens
		SET revoked = true
		WHERE user_id = $1 AND revoked = false`

	if _, err := tx.ExecContext(ctx, revoke, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit password reset: %w", err)
	}

	return nil
}

func (r *resetTokenRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM password_reset_tokens WHERE expires_at <= $1`

	_, err := r.db.ExecContext(ctx, query, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete expired reset tokens: %w", err)
	}

	return nil
}
