package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the calling user's ID in the Gin context.
const userIDKey = contextKey("userID")

// UserIDHeader carries the caller identity recorded as createdBy on entries.
// Authentication happens upstream; the ledger only records who asked.
const UserIDHeader = "X-User-ID"

// CallerAttribution copies the caller identity header into the Gin and request contexts.
func CallerAttribution() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID != "" {
			c.Set(string(userIDKey), userID)
			ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
			ctx = WithLogger(ctx, GetLoggerFromCtx(ctx).With(slog.String("user_id", userID)))
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// GetUserIDFromContext retrieves the caller's user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if userID, ok := c.Request.Context().Value(userIDKey).(string); ok {
			return userID, true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
