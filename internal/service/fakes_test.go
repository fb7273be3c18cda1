package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/makeityours/collegevaani-v0paid-sub001/internal/config"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/domain"
	"github.com/makeityours/collegevaani-v0paid-sub001/pkg/jwt"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user")
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return domain.NewNotFoundError("user")
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		now := time.Now()
		user.LastLoginAt = &now
	}
	return nil
}

type fakeRefreshRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*domain.RefreshToken
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{rows: make(map[uuid.UUID]*domain.RefreshToken)}
}

func (f *fakeRefreshRepo) Create(_ context.Context, token *domain.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *token
	f.rows[token.ID] = &copied
	return nil
}

func (f *fakeRefreshRepo) GetByHash(_ context.Context, tokenHash string) (*domain.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.TokenHash == tokenHash && !row.Revoked && row.ExpiresAt.After(time.Now()) {
			copied := *row
			return &copied, nil
		}
	}
	return nil, domain.NewNotFoundError("refresh token")
}

func (f *fakeRefreshRepo) Revoke(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return domain.NewNotFoundError("refresh token")
	}
	row.Revoked = true
	return nil
}

func (f *fakeRefreshRepo) RevokeByHash(_ context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.TokenHash == tokenHash {
			row.Revoked = true
		}
	}
	return nil
}

func (f *fakeRefreshRepo) RevokeAllForUser(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revokeAllLocked(userID)
	return nil
}

func (f *fakeRefreshRepo) revokeAllLocked(userID uuid.UUID) {
	for _, row := range f.rows {
		if row.UserID == userID {
			row.Revoked = true
		}
	}
}

func (f *fakeRefreshRepo) DeleteExpired(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, row := range f.rows {
		if !row.ExpiresAt.After(time.Now()) {
			delete(f.rows, id)
		}
	}
	return nil
}

func (f *fakeRefreshRepo) activeCount(userID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, row := range f.rows {
		if row.UserID == userID && !row.Revoked {
			count++
		}
	}
	return count
}

// fakeResetRepo reproduces the transactional semantics of the postgres
// implementation against in-memory state shared with the other fakes.
type fakeResetRepo struct {
	mu      sync.Mutex
	rows    []*domain.PasswordResetToken
	users   *fakeUserRepo
	refresh *fakeRefreshRepo
}

func newFakeResetRepo(users *fakeUserRepo, refresh *fakeRefreshRepo) *fakeResetRepo {
	return &fakeResetRepo{users: users, refresh: refresh}
}

func (f *fakeResetRepo) Issue(_ context.Context, token *domain.PasswordResetToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, row := range f.rows {
		if row.UserID == token.UserID && !row.IsUsed {
			row.IsUsed = true
			row.UsedAt = &now
		}
	}
	copied := *token
	f.rows = append(f.rows, &copied)
	return nil
}

func (f *fakeResetRepo) GetActive(_ context.Context, userID uuid.UUID, tokenHash string) (*domain.PasswordResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.UserID == userID && row.Token == tokenHash && !row.IsUsed {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeResetRepo) Consume(_ context.Context, userID uuid.UUID, tokenHash, newPasswordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var match *domain.PasswordResetToken
	for _, row := range f.rows {
		if row.UserID == userID && row.Token == tokenHash && !row.IsUsed {
			match = row
			break
		}
	}
	if match == nil {
		return domain.NewNotFoundError("reset token")
	}

	now := time.Now()
	if match.Expired(now) {
		return domain.NewValidationError("reset token has expired")
	}

	match.IsUsed = true
	match.UsedAt = &now

	f.users.mu.Lock()
	if user, ok := f.users.users[userID]; ok {
		user.PasswordHash = newPasswordHash
	}
	f.users.mu.Unlock()

	f.refresh.mu.Lock()
	f.refresh.revokeAllLocked(userID)
	f.refresh.mu.Unlock()

	return nil
}

func (f *fakeResetRepo) DeleteExpired(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.rows[:0]
	for _, row := range f.rows {
		if row.ExpiresAt.After(time.Now()) {
			kept = append(kept, row)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeResetRepo) expire(userID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.UserID == userID && !row.IsUsed {
			row.ExpiresAt = time.Now().Add(-time.Minute)
		}
	}
}

type fakeRevoker struct {
	mu          sync.Mutex
	blacklisted map[string]bool
	validSince  map[string]time.Time
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{
		blacklisted: make(map[string]bool),
		validSince:  make(map[string]time.Time),
	}
}

func (f *fakeRevoker) AddAccessToken(_ context.Context, token string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blacklisted[token] = true
	return nil
}

func (f *fakeRevoker) IsBlacklisted(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blacklisted[token], nil
}

func (f *fakeRevoker) RevokeUserTokens(_ context.Context, userID string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.validSince[userID] = time.Now()
	return nil
}

func (f *fakeRevoker) IsUserRevoked(_ context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	since, ok := f.validSince[userID]
	if !ok {
		return false, nil
	}
	return tokenIssuedAt.Before(since), nil
}

func (f *fakeRevoker) hasMarker(userID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.validSince[userID]
	return ok
}

type fixture struct {
	users   *fakeUserRepo
	refresh *fakeRefreshRepo
	resets  *fakeResetRepo
	revoker *fakeRevoker
	cfg     *config.Config
	tokens  *jwt.TokenService

	auth  *AuthService
	reset *PasswordResetService
}

func newFixture(t interface {
	Helper()
	Fatalf(format string, args ...interface{})
}) *fixture {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 7 * 24 * time.Hour,
			Issuer:        "collegevaani-test",
		},
		Auth: config.AuthConfig{
			// Minimum bcrypt cost keeps the suite fast.
			BcryptCost:       bcrypt.MinCost,
			ResetTokenExpiry: time.Hour,
			ResetTokenPepper: "test-pepper",
			AppBaseURL:       "http://localhost:3000",
		},
	}

	tokens, err := jwt.NewTokenService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
		cfg.JWT.Issuer,
	)
	if err != nil {
		t.Fatalf("failed to build token service: %v", err)
	}

	users := newFakeUserRepo()
	refresh := newFakeRefreshRepo()
	resets := newFakeResetRepo(users, refresh)
	revoker := newFakeRevoker()
	logger := zap.NewNop()

	return &fixture{
		users:   users,
		refresh: refresh,
		resets:  resets,
		revoker: revoker,
		cfg:     cfg,
		tokens:  tokens,
		auth:    NewAuthService(users, refresh, tokens, revoker, cfg, logger),
		reset:   NewPasswordResetService(users, resets, revoker, nil, cfg, logger),
	}
}
