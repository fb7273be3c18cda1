package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/makeityours/collegevaani-v0paid-sub001/internal/service"
	"github.com/makeityours/collegevaani-v0paid-sub001/pkg/validator"
)

type PasswordHandler struct {
	resetService *service.PasswordResetService
	validator    *validator.Validator
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	UserID      string `json:"uid" validate:"required,uuid"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type ValidateResetTokenRequest struct {
	UserID string `json:"uid" validate:"required,uuid"`
	Token  string `json:"token" validate:"required"`
}

func NewPasswordHandler(resetService *service.PasswordResetService, validator *validator.Validator) *PasswordHandler {
	return &PasswordHandler{
		resetService: resetService,
		validator:    validator,
	}
}

// ForgotPassword issues a reset token. The response is identical for
// known and unknown addresses.
// POST /api/auth/forgot-password
func (h *PasswordHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	if _, err := h.resetService.GenerateResetToken(c.Context(), req.Email); err != nil {
		return respondError(c, err)
	}

	return c.JSON(Envelope{
		Success: true,
		Message: "if that email is registered, a reset link has been sent",
	})
}

// ValidateResetToken lets the reset form check a link before showing
// the password fields. Returns only a boolean, never a reason.
// POST /api/auth/reset-password/validate
func (h *PasswordHandler) ValidateResetToken(c *fiber.Ctx) error {
	var req ValidateResetTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return respondBadRequest(c, "uid must be a valid UUID")
	}

	valid := h.resetService.ValidateResetToken(c.Context(), userID, req.Token)

	return c.JSON(Envelope{
		Success: true,
		Data:    fiber.Map{"valid": valid},
	})
}

// ResetPassword consumes the reset token and installs a new password.
// POST /api/auth/reset-password
func (h *PasswordHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return respondBadRequest(c, "uid must be a valid UUID")
	}

	if err := h.resetService.ResetPassword(c.Context(), userID, req.Token, req.NewPassword); err != nil {
		return respondError(c, err)
	}

	return c.JSON(Envelope{
		Success: true,
		Message: "password reset successfully, please log in again",
	})
}
