package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Cookie names are a contract with the frontend and must match exactly.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// ExtractAccessToken locates a bearer token on the request: the
// Authorization header first, then the HTTP-only cookie set for browser
// flows. Returns "" when neither is present.
func ExtractAccessToken(c *fiber.Ctx) string {
	if token := schemeToken(c.Get(fiber.HeaderAuthorization), "Bearer"); token != "" {
		return token
	}
	return c.Cookies(AccessTokenCookie)
}

// ExtractRefreshToken locates a refresh token on the request. The
// header uses the scheme keyword "Refresh" rather than "Bearer" so the
// two token kinds cannot be confused at the transport layer.
func ExtractRefreshToken(c *fiber.Ctx) string {
	if token := schemeToken(c.Get(fiber.HeaderAuthorization), "Refresh"); token != "" {
		return token
	}
	return c.Cookies(RefreshTokenCookie)
}

func schemeToken(header, scheme string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != scheme {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
