package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/makeityours/collegevaani-v0paid-sub001/internal/service"
)

type AdminHandler struct {
	authService *service.AuthService
}

func NewAdminHandler(authService *service.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// RevokeUserSessions signs a user out of every device. Used by support
// staff after account-takeover reports.
// POST /api/admin/users/:id/sessions/revoke
func (h *AdminHandler) RevokeUserSessions(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "invalid user id")
	}

	if err := h.authService.RevokeUserSessions(c.Context(), userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(Envelope{
		Success: true,
		Message: "all sessions revoked",
	})
}
