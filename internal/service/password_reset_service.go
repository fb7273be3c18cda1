package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/makeityours/collegevaani-v0paid-sub001/internal/config"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/domain"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/repository"
	"github.com/makeityours/collegevaani-v0paid-sub001/pkg/email"
	"github.com/makeityours/collegevaani-v0paid-sub001/pkg/hash"
)

type PasswordResetService struct {
	userRepo       repository.UserRepository
	resetRepo      repository.PasswordResetTokenRepository
	tokenBlacklist TokenRevoker
	emailService   email.Service
	cfg            *config.Config
	logger         *zap.Logger
}

// ResetTokenIssue carries the raw token back to the issuing flow. The
// raw value exists only here and in the email; the store holds its hash.
type ResetTokenIssue struct {
	UserID    uuid.UUID
	RawToken  string
	ExpiresAt time.Time
}

func NewPasswordResetService(
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetTokenRepository,
	tokenBlacklist TokenRevoker,
	emailService email.Service,
	cfg *config.Config,
	logger *zap.Logger,
) *PasswordResetService {
	return &PasswordResetService{
		userRepo:       userRepo,
		resetRepo:      resetRepo,
		tokenBlacklist: tokenBlacklist,
		emailService:   emailService,
		cfg:            cfg,
		logger:         logger,
	}
}

// GenerateResetToken issues a fresh single-use token for the account
// behind email and invalidates any prior unused one. Unknown or
// inactive addresses return (nil, nil): the caller must not be able to
// tell the difference from the outside.
func (s *PasswordResetService) GenerateResetToken(ctx context.Context, emailAddr string) (*ResetTokenIssue, error) {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != domain.UserStatusActive {
		return nil, nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}
	rawToken := hex.EncodeToString(raw)

	now := time.Now()
	token := &domain.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     s.hashResetToken(rawToken),
		IsUsed:    false,
		ExpiresAt: now.Add(s.cfg.Auth.ResetTokenExpiry),
		CreatedAt: now,
	}

	if err := s.resetRepo.Issue(ctx, token); err != nil {
		return nil, err
	}

	s.sendResetEmail(user, rawToken)

	return &ResetTokenIssue{
		UserID:    user.ID,
		RawToken:  rawToken,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// ValidateResetToken reports whether the token is currently consumable.
// Read-only, and deliberately reason-free: not-found and expired are
// indistinguishable to the caller.
func (s *PasswordResetService) ValidateResetToken(ctx context.Context, userID uuid.UUID, rawToken string) bool {
	token, err := s.resetRepo.GetActive(ctx, userID, s.hashResetToken(rawToken))
	if err != nil {
		s.logger.Error("failed to look up reset token", zap.Error(err))
		return false
	}
	if token == nil {
		return false
	}

	return !token.Expired(time.Now())
}

// ResetPassword consumes the token and installs the new password. Token
// consumption, the password update, and refresh-token revocation commit
// as one transaction; a partially applied reset would leave old refresh
// tokens honoring a password the user just abandoned.
func (s *PasswordResetService) ResetPassword(ctx context.Context, userID uuid.UUID, rawToken, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	passwordHash, err := hash.HashPasswordWithCost(newPassword, s.cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	if err := s.resetRepo.Consume(ctx, userID, s.hashResetToken(rawToken), passwordHash); err != nil {
		return err
	}

	// Issued-before marker so outstanding access tokens die with the
	// old credential too, not just the stored refresh rows.
	if err := s.tokenBlacklist.RevokeUserTokens(ctx, userID.String(), s.cfg.JWT.RefreshExpiry); err != nil {
		s.logger.Error("failed to set user revocation marker", zap.Error(err))
	}

	s.logger.Info("password reset completed", zap.String("user_id", userID.String()))

	if s.emailService != nil {
		if err := s.emailService.SendPasswordChangedEmail(user.Email, user.Name); err != nil {
			s.logger.Warn("failed to send password changed email", zap.Error(err))
		}
	}

	return nil
}

func (s *PasswordResetService) sendResetEmail(user *domain.User, rawToken string) {
	if s.emailService == nil {
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password?uid=%s&token=%s",
		s.cfg.Auth.AppBaseURL, user.ID.String(), rawToken)

	if err := s.emailService.SendPasswordResetEmail(user.Email, user.Name, resetURL); err != nil {
		s.logger.Warn("failed to send password reset email", zap.Error(err))
	}
}

// hashResetToken salts the raw token with the server pepper before
// hashing, so a leaked table alone cannot be replayed.
func (s *PasswordResetService) hashResetToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken + s.cfg.Auth.ResetTokenPepper))
	return hex.EncodeToString(sum[:])
}
