package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/orgdash/internal/core/ports/gateways"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked.
var pathsToSkip = map[string]bool{
	"/health":                true,
	"/api/v1/stripe/webhook": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful authenticated API calls.
func PosthogMiddleware(sink gateways.AnalyticsSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sink == nil || pathsToSkip[c.Request.URL.Path] || strings.HasPrefix(c.Request.URL.Path, "/swagger") {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/organisation/invitations" -> "api_v1_organisation_invitations"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		sink.Enqueue(userID, eventName, props)
	}
}
