package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/orgdash/internal/adapters/email"
	"github.com/SscSPs/orgdash/internal/adapters/payments"
	"github.com/SscSPs/orgdash/internal/core/ports/gateways"
	"github.com/SscSPs/orgdash/internal/core/services"
	"github.com/SscSPs/orgdash/internal/handlers"
	"github.com/SscSPs/orgdash/internal/middleware"
	"github.com/SscSPs/orgdash/internal/platform/config"
	"github.com/SscSPs/orgdash/internal/platform/migrations"
	"github.com/SscSPs/orgdash/internal/repositories/database/pgsql"
	"github.com/SscSPs/orgdash/internal/utils"
	"github.com/SscSPs/orgdash/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Organisation Dashboard API
// @version 1.0
// @description Accounts, organisations, invitations and billing for the dashboard.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, database.PoolOptions{
		Ping:           cfg.EnableDBCheck,
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	applied, err := migrations.Up(cfg.DatabaseURL, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer analytics.Close()

	gw := services.Gateways{
		Mailer:    email.NewResendMailer(cfg.ResendEnabled, cfg.ResendAPIKey, cfg.ResendFromEmail),
		Analytics: analytics,
	}
	if cfg.StripeSecretKey != "" {
		gw.Payments = payments.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	}
	var sink gateways.AnalyticsSink = analytics

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, gw)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, sink); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
