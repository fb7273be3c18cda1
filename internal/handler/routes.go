package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/makeityours/collegevaani-v0paid-sub001/internal/domain"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/handler/middleware"
)

func SetupRoutes(
	app *fiber.App,
	authHandler *AuthHandler,
	passwordHandler *PasswordHandler,
	adminHandler *AdminHandler,
	healthHandler *HealthHandler,
	authMiddleware fiber.Handler,
) {
	// Health checks (public)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	// Auth routes
	auth := app.Group("/api/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", authMiddleware, authHandler.Me)

	// Password recovery (public: the caller is not authenticated yet)
	auth.Post("/forgot-password", passwordHandler.ForgotPassword)
	auth.Post("/reset-password", passwordHandler.ResetPassword)
	auth.Post("/reset-password/validate", passwordHandler.ValidateResetToken)

	// Admin routes
	admin := app.Group("/api/admin", authMiddleware, middleware.RequireRoles(domain.RoleAdmin))
	admin.Post("/users/:id/sessions/revoke",
		middleware.RequireCapability(domain.CapManageUsers),
		adminHandler.RevokeUserSessions,
	)
}
