package middleware

import (
	"context"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey  = contextKey("userID")
	sessionKey = contextKey("session")
	userKey    = contextKey("user")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, ok := c.Request.Context().Value(userIDKey).(string); ok && userID != "" {
		return userID, true
	}
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		return "", false
	}
	userID, ok := userIDVal.(string)
	return userID, ok && userID != ""
}

// GetSessionFromContext retrieves the verified session set by SessionAuth.
func GetSessionFromContext(c *gin.Context) (*domain.Session, bool) {
	s, ok := c.Request.Context().Value(sessionKey).(*domain.Session)
	return s, ok && s != nil
}

// GetUserFromContext retrieves the user loaded by RequireAdmin or LoadUser.
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	u, ok := c.Request.Context().Value(userKey).(*domain.User)
	return u, ok && u != nil
}

// withSession stores the session, its subject and an enriched logger on the request context.
func withSession(c *gin.Context, session *domain.Session) {
	ctx := context.WithValue(c.Request.Context(), sessionKey, session)
	ctx = context.WithValue(ctx, userIDKey, session.UserID)
	ctx = WithLogger(ctx, GetLoggerFromCtx(ctx).With("user_id", session.UserID))
	c.Set(string(userIDKey), session.UserID)
	c.Request = c.Request.WithContext(ctx)
}

func withUser(c *gin.Context, user *domain.User) {
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), userKey, user))
}
