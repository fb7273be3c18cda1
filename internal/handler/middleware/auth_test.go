package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makeityours/collegevaani-v0paid-sub001/internal/domain"
)

// guardStatus runs one request through a guard preceded by a stub that
// plants claims for the given role. An empty role plants no claims.
func guardStatus(t *testing.T, role domain.Role, guard fiber.Handler) int {
	t.Helper()

	app := fiber.New()
	app.Get("/probe",
		func(c *fiber.Ctx) error {
			if role != "" {
				c.Locals(ClaimsLocal, &domain.Claims{Role: role})
			}
			return c.Next()
		},
		guard,
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/probe", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode
}

func TestRequireRoles(t *testing.T) {
	guard := RequireRoles(domain.RoleAdmin, domain.RoleCounselor)

	assert.Equal(t, fiber.StatusOK, guardStatus(t, domain.RoleAdmin, guard))
	assert.Equal(t, fiber.StatusOK, guardStatus(t, domain.RoleCounselor, guard))
	assert.Equal(t, fiber.StatusForbidden, guardStatus(t, domain.RoleStudent, guard))
}

func TestRequireRoles_NoClaims(t *testing.T) {
	status := guardStatus(t, "", RequireRoles(domain.RoleAdmin))
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRequireCapability(t *testing.T) {
	guard := RequireCapability(domain.CapManageUsers)

	assert.Equal(t, fiber.StatusOK, guardStatus(t, domain.RoleAdmin, guard))
	assert.Equal(t, fiber.StatusForbidden, guardStatus(t, domain.RoleStudent, guard))
}

func TestRequireCapability_SharedCapability(t *testing.T) {
	guard := RequireCapability(domain.CapManageLeads)

	assert.Equal(t, fiber.StatusOK, guardStatus(t, domain.RoleCounselor, guard))
	assert.Equal(t, fiber.StatusForbidden, guardStatus(t, domain.RoleCollegeRep, guard))
}
