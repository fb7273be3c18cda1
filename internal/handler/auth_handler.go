package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/makeityours/collegevaani-v0paid-sub001/internal/config"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/handler/middleware"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/repository"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/service"
	"github.com/makeityours/collegevaani-v0paid-sub001/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
	userRepo    repository.UserRepository
	validator   *validator.Validator
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, userRepo repository.UserRepository, validator *validator.Validator, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userRepo:    userRepo,
		validator:   validator,
		cfg:         cfg,
	}
}

// Register handles user registration
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	resp, err := h.authService.Register(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	setAuthCookies(c, h.cfg, resp.Tokens)

	return c.Status(fiber.StatusCreated).JSON(Envelope{
		Success:      true,
		Message:      "registered successfully",
		User:         resp.User,
		AccessToken:  resp.Tokens.AccessToken,
		RefreshToken: resp.Tokens.RefreshToken,
	})
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	resp, err := h.authService.Login(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	setAuthCookies(c, h.cfg, resp.Tokens)

	return c.JSON(Envelope{
		Success:      true,
		Message:      "logged in successfully",
		User:         resp.User,
		AccessToken:  resp.Tokens.AccessToken,
		RefreshToken: resp.Tokens.RefreshToken,
	})
}

// Me returns the session user for the cookie-authenticated probe the
// frontend runs on page load.
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromCtx(c)

	user, err := h.userRepo.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(Envelope{
		Success: true,
		User:    service.NewUserDTO(user),
	})
}

// RefreshToken exchanges a refresh token for a fresh pair
// POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := middleware.ExtractRefreshToken(c)
	if refreshToken == "" {
		// Programmatic clients may also post the token in the body.
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.BodyParser(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	resp, err := h.authService.RefreshToken(c.Context(), refreshToken)
	if err != nil {
		return respondError(c, err)
	}

	setAuthCookies(c, h.cfg, resp.Tokens)

	return c.JSON(Envelope{
		Success:      true,
		User:         resp.User,
		AccessToken:  resp.Tokens.AccessToken,
		RefreshToken: resp.Tokens.RefreshToken,
	})
}

// Logout invalidates the presented tokens and clears the auth cookies.
// Always succeeds from the client's point of view.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	accessToken := middleware.ExtractAccessToken(c)
	refreshToken := middleware.ExtractRefreshToken(c)

	_ = h.authService.Logout(c.Context(), accessToken, refreshToken)

	clearAuthCookies(c, h.cfg)

	return c.JSON(Envelope{
		Success: true,
		Message: "logged out successfully",
	})
}
