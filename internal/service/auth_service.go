package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/makeityours/collegevaani-v0paid-sub001/internal/config"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/domain"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/repository"
	"github.com/makeityours/collegevaani-v0paid-sub001/pkg/hash"
	"github.com/makeityours/collegevaani-v0paid-sub001/pkg/jwt"
)

// TokenRevoker is the revocation-marker store consulted wherever tokens
// are honored. Stateless JWTs stay cryptographically valid until expiry;
// revocation is enforced at this lookup layer.
type TokenRevoker interface {
	AddAccessToken(ctx context.Context, token string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
	RevokeUserTokens(ctx context.Context, userID string, ttl time.Duration) error
	IsUserRevoked(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error)
}

type AuthService struct {
	userRepo       repository.UserRepository
	refreshRepo    repository.RefreshTokenRepository
	tokenService   *jwt.TokenService
	tokenBlacklist TokenRevoker
	cfg            *config.Config
	logger         *zap.Logger
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,role"`
}

type LoginResponse struct {
	Tokens *domain.TokenPair `json:"tokens"`
	User   *UserDTO          `json:"user"`
}

// UserDTO is the user object the portal frontend caches in its session.
type UserDTO struct {
	ID         uuid.UUID   `json:"id"`
	Email      string      `json:"email"`
	Name       string      `json:"name"`
	Role       domain.Role `json:"role"`
	Avatar     *string     `json:"avatar,omitempty"`
	IsVerified bool        `json:"isVerified"`
}

func NewUserDTO(user *domain.User) *UserDTO {
	return &UserDTO{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       user.Role,
		Avatar:     user.AvatarURL,
		IsVerified: user.EmailVerified,
	}
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshRepo repository.RefreshTokenRepository,
	tokenService *jwt.TokenService,
	tokenBlacklist TokenRevoker,
	cfg *config.Config,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		refreshRepo:    refreshRepo,
		tokenService:   tokenService,
		tokenBlacklist: tokenBlacklist,
		cfg:            cfg,
		logger:         logger,
	}
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("email is already registered")
	}

	role := domain.RoleStudent
	if req.Role != "" {
		role = domain.Role(req.Role)
	}
	// Admin accounts are provisioned out of band, never self-registered.
	if role == domain.RoleAdmin {
		return nil, domain.NewValidationError("role is not available for registration")
	}

	passwordHash, err := hash.HashPasswordWithCost(req.Password, s.cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Role:         role,
		Status:       domain.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()),
	)

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Same error as a wrong password, so login cannot probe for
		// registered addresses.
		return nil, domain.NewAuthenticationError(domain.ErrInvalidCredentials)
	}

	if !hash.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, domain.NewAuthenticationError(domain.ErrInvalidCredentials)
	}

	if user.Status != domain.UserStatusActive {
		return nil, domain.NewAuthenticationError(domain.ErrInvalidCredentials)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to update last login", zap.Error(err))
	}

	return s.issueTokens(ctx, user)
}

// Authenticate verifies an access token and returns its claims. An
// empty token means no token was presented.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.Claims, error) {
	if accessToken == "" {
		return nil, domain.NewAuthenticationError(domain.ErrNoToken)
	}

	claims, err := s.tokenService.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	blacklisted, err := s.tokenBlacklist.IsBlacklisted(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, domain.NewAuthenticationError(domain.ErrTokenRevoked)
	}

	if claims.IssuedAt != nil {
		revoked, err := s.tokenBlacklist.IsUserRevoked(ctx, claims.UserID.String(), claims.IssuedAt.Time)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, domain.NewAuthenticationError(domain.ErrTokenRevoked)
		}
	}

	return claims, nil
}

// RequireAuth is the single chokepoint protected handlers call before
// doing privileged work: authenticate, then check the role set.
// Authentication failures and authorization failures stay distinct.
func (s *AuthService) RequireAuth(ctx context.Context, accessToken string, roles ...domain.Role) (*domain.Claims, error) {
	claims, err := s.Authenticate(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if !domain.CheckRole(claims.Role, roles...) {
		return nil, domain.NewAuthorizationError(domain.ErrInsufficientPermissions)
	}

	return claims, nil
}

// RefreshToken exchanges a refresh token for a new pair. The token must
// verify cryptographically, have a live stored row, and postdate the
// user's revocation marker; the old row is revoked on rotation.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	if refreshToken == "" {
		return nil, domain.NewAuthenticationError(domain.ErrNoToken)
	}

	claims, err := s.tokenService.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.IssuedAt != nil {
		revoked, err := s.tokenBlacklist.IsUserRevoked(ctx, claims.UserID.String(), claims.IssuedAt.Time)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, domain.NewAuthenticationError(domain.ErrTokenRevoked)
		}
	}

	stored, err := s.refreshRepo.GetByHash(ctx, hashToken(refreshToken))
	if err != nil {
		if domain.IsNotFoundError(err) {
			return nil, domain.NewAuthenticationError(domain.ErrTokenRevoked)
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	if user.Status != domain.UserStatusActive {
		return nil, domain.NewAuthenticationError(domain.ErrInvalidCredentials)
	}

	if err := s.refreshRepo.Revoke(ctx, stored.ID); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout invalidates the presented tokens. It is idempotent: an absent
// or already-revoked token is not an error.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if accessToken != "" {
		if claims, err := s.tokenService.VerifyAccessToken(accessToken); err == nil && claims.ExpiresAt != nil {
			if err := s.tokenBlacklist.AddAccessToken(ctx, accessToken, claims.ExpiresAt.Time); err != nil {
				s.logger.Warn("failed to blacklist access token on logout", zap.Error(err))
			}
		}
	}

	if refreshToken != "" {
		if err := s.refreshRepo.RevokeByHash(ctx, hashToken(refreshToken)); err != nil {
			s.logger.Warn("failed to revoke refresh token on logout", zap.Error(err))
		}
	}

	return nil
}

// RevokeUserSessions force-logs-out a user everywhere: every stored
// refresh token is revoked and outstanding access tokens stop verifying
// against the revocation marker.
func (s *AuthService) RevokeUserSessions(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.refreshRepo.RevokeAllForUser(ctx, userID); err != nil {
		return err
	}

	if err := s.tokenBlacklist.RevokeUserTokens(ctx, userID.String(), s.cfg.JWT.RefreshExpiry); err != nil {
		return err
	}

	s.logger.Info("all sessions revoked for user", zap.String("user_id", userID.String()))
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*LoginResponse, error) {
	tokenPair, err := s.tokenService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	record := &domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(tokenPair.RefreshToken),
		ExpiresAt: time.Now().Add(s.cfg.JWT.RefreshExpiry),
		CreatedAt: time.Now(),
	}

	if err := s.refreshRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &LoginResponse{
		Tokens: tokenPair,
		User:   NewUserDTO(user),
	}, nil
}

// hashToken creates the SHA-256 hex digest stored in place of raw
// refresh tokens.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
