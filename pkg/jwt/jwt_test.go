package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makeityours/collegevaani-v0paid-sub001/internal/domain"
)

func newTestService(t *testing.T, accessExpiry, refreshExpiry time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService("access-secret", "refresh-secret", accessExpiry, refreshExpiry, "collegevaani-test")
	require.NoError(t, err)
	return svc
}

func testUser() *domain.User {
	return &domain.User{
		ID:            uuid.New(),
		Email:         "student@example.com",
		Name:          "Asha Verma",
		Role:          domain.RoleStudent,
		EmailVerified: true,
	}
}

func TestNewTokenService_RejectsSharedSecret(t *testing.T) {
	_, err := NewTokenService("same", "same", time.Minute, time.Hour, "test")
	assert.Error(t, err)

	_, err = NewTokenService("", "refresh", time.Minute, time.Hour, "test")
	assert.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService(t, 15*time.Minute, 7*24*time.Hour)
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Name, claims.Name)
	assert.Equal(t, user.Role, claims.Role)
	assert.True(t, claims.EmailVerified)
	assert.Equal(t, domain.TokenTypeAccess, claims.TokenType)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService(t, 15*time.Minute, 7*24*time.Hour)
	user := testUser()

	token, err := svc.GenerateRefreshToken(user)
	require.NoError(t, err)

	claims, err := svc.VerifyRefreshToken(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.TokenTypeRefresh, claims.TokenType)
}

func TestCrossKindVerificationFails(t *testing.T) {
	svc := newTestService(t, 15*time.Minute, 7*24*time.Hour)
	user := testUser()

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(pair.RefreshToken)
	require.Error(t, err)
	assert.True(t, domain.IsAuthenticationError(err))

	_, err = svc.VerifyRefreshToken(pair.AccessToken)
	require.Error(t, err)
	assert.True(t, domain.IsAuthenticationError(err))
}

func TestCrossKindWithSharedSecretRejectedByType(t *testing.T) {
	// Even if both verifications used one secret, the embedded type
	// claim must stop wrong-purpose tokens. Simulate by verifying a
	// refresh token with a service whose access secret matches the
	// issuer's refresh secret.
	issuer := newTestService(t, 15*time.Minute, 7*24*time.Hour)
	verifier, err := NewTokenService("refresh-secret", "other-secret", 15*time.Minute, 7*24*time.Hour, "collegevaani-test")
	require.NoError(t, err)

	refreshToken, err := issuer.GenerateRefreshToken(testUser())
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(refreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTokenType)
}

func TestExpiredTokenDistinguishedFromInvalid(t *testing.T) {
	svc := newTestService(t, -time.Minute, 7*24*time.Hour)

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	assert.True(t, domain.IsAuthenticationError(err))
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := newTestService(t, 15*time.Minute, 7*24*time.Hour)

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token + "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	var authErr *domain.AuthenticationError
	assert.True(t, errors.As(err, &authErr))
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := newTestService(t, 15*time.Minute, 7*24*time.Hour)
	other, err := NewTokenService("different-access", "different-refresh", 15*time.Minute, 7*24*time.Hour, "collegevaani-test")
	require.NoError(t, err)

	token, err := issuer.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
