package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/orgdash/cmd/docs"
	"github.com/SscSPs/orgdash/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
	"github.com/SscSPs/orgdash/internal/middleware"
	"github.com/SscSPs/orgdash/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	analytics gateways.AnalyticsSink,
) error {
	if err := registerValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	// cors.New panics without any allowed origin
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.PosthogMiddleware(analytics))

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	limiter, err := middleware.NewRateLimiter(cfg.SignInRateLimit)
	if err != nil {
		return fmt.Errorf("invalid sign-in rate limit %q: %w", cfg.SignInRateLimit, err)
	}
	rateLimited := middleware.RateLimit(limiter)

	setupAPIV1Routes(r, cfg, services, rateLimited)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimited gin.HandlerFunc,
) {
	public := r.Group("/api/v1")
	authed := public.Group("", middleware.AuthMiddleware(cfg.JWTSecret, cfg.SessionCookieName))
	confirmed := authed.Group("", middleware.RequireConfirmedUser(services.Account))

	sessions := newSessionCookies(cfg)

	registerAuthRoutes(public, authed, rateLimited, cfg, services.Account, sessions)
	registerGoogleOAuthRoutes(public, services.GoogleOAuth, services.Account, sessions)
	registerUserRoutes(authed, services.Account, services.Activity)
	registerInvitationRoutes(authed, confirmed, services.Invitation)
	registerOrganisationRoutes(confirmed, services.Organisation)
	registerBillingRoutes(public, confirmed, cfg, services.Billing)
	registerContactRoutes(public, rateLimited, services.Contact)
	registerAdminRoutes(confirmed, services.Account)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
