package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/orgdash/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ConfirmationChecker reports the stored confirmation state of a user.
// Session claims are issued at sign-in and go stale once the account is activated.
type ConfirmationChecker interface {
	IsUserConfirmed(ctx context.Context, userID string) (bool, error)
}

// AuthMiddleware creates a Gin middleware handler that validates session tokens.
// The token is read from the Authorization header, falling back to the session cookie.
func AuthMiddleware(jwtSecret, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, err := extractToken(c, cookieName)
		if err != nil {
			logger.Warn("Session token missing", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := utils.ParseSessionToken(tokenString, jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		if claims.Subject == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", claims.Subject))
		ctx := WithUserID(c.Request.Context(), claims.Subject)
		ctx = context.WithValue(ctx, sessionClaimsKey, claims)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(userIDKey), claims.Subject)

		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) (string, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", errors.New("Authorization header format must be Bearer {token}")
		}
		return parts[1], nil
	}
	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			return cookie, nil
		}
	}
	return "", errors.New("Authorization header required")
}

// GetSessionClaimsFromCtx returns the claims stored by AuthMiddleware.
func GetSessionClaimsFromCtx(ctx context.Context) (*utils.SessionClaims, bool) {
	claims, ok := ctx.Value(sessionClaimsKey).(*utils.SessionClaims)
	return claims, ok
}

// RequireConfirmedUser rejects authenticated users whose account is not yet confirmed.
// It must run after AuthMiddleware.
func RequireConfirmedUser(checker ConfirmationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		claims, ok := GetSessionClaimsFromCtx(ctx)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if claims.IsConfirmed {
			c.Next()
			return
		}

		confirmed, err := checker.IsUserConfirmed(ctx, claims.Subject)
		if err != nil {
			GetLoggerFromCtx(ctx).Error("Failed to check user confirmation", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if !confirmed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "Please confirm your account to continue.",
				"redirectTo": "/confirmation",
			})
			return
		}
		c.Next()
	}
}
