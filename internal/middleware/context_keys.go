package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	// userIDKey is the key used to store the authenticated user's ID.
	userIDKey = contextKey("userID")
	// sessionClaimsKey holds the parsed session claims of the authenticated user.
	sessionClaimsKey = contextKey("sessionClaims")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok
	}
	return GetUserIDFromCtx(c.Request.Context())
}

// GetUserIDFromCtx retrieves the authenticated user ID from a standard context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
