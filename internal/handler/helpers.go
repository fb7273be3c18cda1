package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/makeityours/collegevaani-v0paid-sub001/internal/config"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/domain"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/handler/middleware"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/service"
)

// Envelope is the JSON shape shared with the portal frontend.
type Envelope struct {
	Success      bool             `json:"success"`
	Message      string           `json:"message,omitempty"`
	Error        string           `json:"error,omitempty"`
	Code         string           `json:"code,omitempty"`
	User         *service.UserDTO `json:"user,omitempty"`
	AccessToken  string           `json:"accessToken,omitempty"`
	RefreshToken string           `json:"refreshToken,omitempty"`
	Data         interface{}      `json:"data,omitempty"`
}

// respondError maps the domain error taxonomy onto HTTP statuses.
// Authentication and authorization are deliberately distinct outcomes.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case domain.IsAuthenticationError(err):
		return c.Status(fiber.StatusUnauthorized).JSON(Envelope{
			Success: false,
			Error:   unwrapMessage(err),
			Code:    "AUTHENTICATION_ERROR",
		})
	case domain.IsAuthorizationError(err):
		return c.Status(fiber.StatusForbidden).JSON(Envelope{
			Success: false,
			Error:   unwrapMessage(err),
			Code:    "AUTHORIZATION_ERROR",
		})
	case domain.IsValidationError(err):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(Envelope{
			Success: false,
			Error:   err.Error(),
			Code:    "VALIDATION_ERROR",
		})
	case domain.IsNotFoundError(err):
		return c.Status(fiber.StatusNotFound).JSON(Envelope{
			Success: false,
			Error:   err.Error(),
			Code:    "NOT_FOUND",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(Envelope{
			Success: false,
			Error:   "internal server error",
			Code:    "INTERNAL_ERROR",
		})
	}
}

func respondBadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		Success: false,
		Error:   message,
		Code:    "BAD_REQUEST",
	})
}

// unwrapMessage surfaces the sentinel cause without the kind prefix.
func unwrapMessage(err error) string {
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		if cause := u.Unwrap(); cause != nil {
			return cause.Error()
		}
	}
	return err.Error()
}

// setAuthCookies installs the HTTP-only token cookies for browser
// clients. Header-based clients read the same tokens from the envelope.
func setAuthCookies(c *fiber.Ctx, cfg *config.Config, tokens *domain.TokenPair) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    tokens.AccessToken,
		HTTPOnly: true,
		Secure:   cfg.Auth.SecureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(cfg.JWT.AccessExpiry.Seconds()),
	})
	c.Cookie(&fiber.Cookie{
		Name:     middleware.RefreshTokenCookie,
		Value:    tokens.RefreshToken,
		HTTPOnly: true,
		Secure:   cfg.Auth.SecureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(cfg.JWT.RefreshExpiry.Seconds()),
	})
}

func clearAuthCookies(c *fiber.Ctx, cfg *config.Config) {
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   cfg.Auth.SecureCookies,
			SameSite: fiber.CookieSameSiteLaxMode,
			Path:     "/",
			Expires:  expired,
		})
	}
}
