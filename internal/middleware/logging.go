package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// contextKey is a private type for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey   = contextKey("logger")
	clientIPCtxKey = contextKey("clientIP")
)

// StructuredLoggingMiddleware creates a Gin middleware handler that injects
// a request-scoped logger and the client IP into the request context.
func StructuredLoggingMiddleware(baseLogger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		requestLogger := baseLogger.With(
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)

		c.Header("X-Request-ID", requestID)

		ctx := WithLogger(c.Request.Context(), requestLogger)
		ctx = WithClientIP(ctx, c.ClientIP())
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		requestLogger.Info("Request completed",
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetLoggerFromCtx retrieves the request-scoped logger from ctx.
// It returns the default logger if none is found.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithClientIP returns a copy of ctx carrying the caller's IP address.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPCtxKey, ip)
}

// GetClientIPFromCtx returns the caller's IP address, or "" when unknown.
func GetClientIPFromCtx(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPCtxKey).(string)
	return ip
}
