package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/makeityours/collegevaani-v0paid-sub001/internal/domain"
)

// TokenService signs and verifies access and refresh tokens. The two
// kinds use distinct HMAC secrets, so a leaked refresh-signing key
// cannot mint access tokens and vice versa; the embedded "type" claim
// additionally rejects a valid-but-wrong-purpose token even if the
// secrets were ever shared.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	issuer        string
}

func NewTokenService(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration, issuer string) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("jwt secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}

	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		issuer:        issuer,
	}, nil
}

// GenerateAccessToken signs a short-lived token carrying the full
// identity claim set.
func (s *TokenService) GenerateAccessToken(user *domain.User) (string, error) {
	now := time.Now()

	claims := domain.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		UserID:        user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
		TokenType:     domain.TokenTypeAccess,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.accessSecret)
}

// GenerateRefreshToken signs a longer-lived token used only to mint new
// access tokens. It carries fewer claims.
func (s *TokenService) GenerateRefreshToken(user *domain.User) (string, error) {
	now := time.Now()

	claims := domain.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		UserID:    user.ID,
		Email:     user.Email,
		TokenType: domain.TokenTypeRefresh,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.refreshSecret)
}

func (s *TokenService) GenerateTokenPair(user *domain.User) (*domain.TokenPair, error) {
	accessToken, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.accessExpiry),
		TokenType:    "Bearer",
	}, nil
}

// VerifyAccessToken verifies signature and expiry against the access
// secret and asserts the token kind.
func (s *TokenService) VerifyAccessToken(tokenString string) (*domain.Claims, error) {
	return s.verify(tokenString, s.accessSecret, domain.TokenTypeAccess)
}

// VerifyRefreshToken verifies signature and expiry against the refresh
// secret and asserts the token kind.
func (s *TokenService) VerifyRefreshToken(tokenString string) (*domain.Claims, error) {
	return s.verify(tokenString, s.refreshSecret, domain.TokenTypeRefresh)
}

func (s *TokenService) verify(tokenString string, secret []byte, tokenType string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		// Expired and malformed are both rejected; the distinction is
		// kept for observability.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.NewAuthenticationError(domain.ErrTokenExpired)
		}
		return nil, domain.NewAuthenticationError(domain.ErrInvalidToken)
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, domain.NewAuthenticationError(domain.ErrInvalidToken)
	}

	if claims.TokenType != tokenType {
		return nil, domain.NewAuthenticationError(domain.ErrInvalidTokenType)
	}

	return claims, nil
}
