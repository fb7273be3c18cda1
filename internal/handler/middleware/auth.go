package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/makeityours/collegevaani-v0paid-sub001/internal/domain"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/service"
)

const ClaimsLocal = "claims"

// Protected authenticates the request and stores the verified claims in
// fiber locals for downstream handlers. Missing, invalid, expired, and
// revoked tokens are all 401.
func Protected(authService *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := authService.Authenticate(c.Context(), ExtractAccessToken(c))
		if err != nil {
			var authErr *domain.AuthenticationError
			if errors.As(err, &authErr) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"error":   authErr.Err.Error(),
					"code":    "AUTHENTICATION_ERROR",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "failed to verify token",
				"code":    "INTERNAL_ERROR",
			})
		}

		c.Locals(ClaimsLocal, claims)
		return c.Next()
	}
}

// RequireRoles rejects authenticated requests whose role is outside the
// required set. Distinct from Protected: the identity is established,
// so the failure is 403, never 401.
func RequireRoles(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ClaimsFromCtx(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   domain.ErrNoToken.Error(),
				"code":    "AUTHENTICATION_ERROR",
			})
		}

		if !domain.CheckRole(claims.Role, roles...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   domain.ErrInsufficientPermissions.Error(),
				"code":    "AUTHORIZATION_ERROR",
			})
		}

		return c.Next()
	}
}

// RequireCapability gates a route on the permission matrix instead of a
// hard-coded role list.
func RequireCapability(capability domain.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ClaimsFromCtx(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   domain.ErrNoToken.Error(),
				"code":    "AUTHENTICATION_ERROR",
			})
		}

		if !domain.Can(claims.Role, capability) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   domain.ErrInsufficientPermissions.Error(),
				"code":    "AUTHORIZATION_ERROR",
			})
		}

		return c.Next()
	}
}

// ClaimsFromCtx returns the claims stored by Protected, or nil.
func ClaimsFromCtx(c *fiber.Ctx) *domain.Claims {
	claims, _ := c.Locals(ClaimsLocal).(*domain.Claims)
	return claims
}
