package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/makeityours/collegevaani-v0paid-sub001/internal/config"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/handler"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/handler/middleware"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/repository/postgres"
	"github.com/makeityours/collegevaani-v0paid-sub001/internal/service"
	"github.com/makeityours/collegevaani-v0paid-sub001/pkg/blacklist"
	"github.com/makeityours/collegevaani-v0paid-sub001/pkg/email"
	"github.com/makeityours/collegevaani-v0paid-sub001/pkg/jwt"
	"github.com/makeityours/collegevaani-v0paid-sub001/pkg/logger"
	"github.com/makeityours/collegevaani-v0paid-sub001/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := initDB(cfg)
	if err != nil {
		zl.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zl.Error("error closing database connection", zap.Error(err))
		}
	}()
	zl.Info("database connection established")

	redisClient, err := initRedis(cfg)
	if err != nil {
		zl.Fatal("failed to initialize redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			zl.Error("error closing redis connection", zap.Error(err))
		}
	}()
	zl.Info("redis connection established")

	validate := validator.NewValidator()

	userRepo := postgres.NewUserRepository(db)
	refreshRepo := postgres.NewRefreshTokenRepository(db)
	resetRepo := postgres.NewPasswordResetTokenRepository(db)

	tokenService, err := jwt.NewTokenService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
		cfg.JWT.Issuer,
	)
	if err != nil {
		zl.Fatal("failed to initialize token service", zap.Error(err))
	}

	tokenBlacklist := blacklist.NewTokenBlacklist(redisClient)

	var emailService email.Service
	if cfg.Email.Enabled {
		emailService, err = email.NewResendService(&email.Config{
			APIKey:    cfg.Email.APIKey,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			zl.Warn("failed to initialize email service, emails disabled", zap.Error(err))
			emailService = nil
		} else {
			zl.Info("email service initialized")
		}
	} else {
		zl.Info("email service disabled (set EMAIL_ENABLED=true to enable)")
	}

	authService := service.NewAuthService(userRepo, refreshRepo, tokenService, tokenBlacklist, cfg, zl)
	resetService := service.NewPasswordResetService(userRepo, resetRepo, tokenBlacklist, emailService, cfg, zl)

	authHandler := handler.NewAuthHandler(authService, userRepo, validate, cfg)
	passwordHandler := handler.NewPasswordHandler(resetService, validate)
	adminHandler := handler.NewAdminHandler(authService)
	healthHandler := handler.NewHealthHandler(db)

	app := fiber.New(fiber.Config{
		AppName:      "CollegeVaani Auth Service v1.0",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	app.Use(middleware.RecoveryMiddleware(zl))
	app.Use(middleware.LoggerMiddleware(zl))
	app.Use(middleware.CORSMiddleware(cfg))

	handler.SetupRoutes(
		app,
		authHandler,
		passwordHandler,
		adminHandler,
		healthHandler,
		middleware.Protected(authService),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Expired token rows accumulate; sweep them hourly.
	go housekeeping(ctx, zl, refreshRepo.DeleteExpired, resetRepo.DeleteExpired)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		zl.Info("server starting",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := app.Listen(addr); err != nil {
			zl.Error("server failed to start", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server stopped")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func housekeeping(ctx context.Context, zl *zap.Logger, sweeps ...func(context.Context) error) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, sweep := range sweeps {
				if err := sweep(ctx); err != nil {
					zl.Warn("housekeeping sweep failed", zap.Error(err))
				}
			}
		}
	}
}
