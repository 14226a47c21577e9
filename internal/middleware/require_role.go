package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// LoadUser loads the account of the session subject. It must run after SessionAuth.
func LoadUser(userSvc portssvc.UserReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := loadUser(c, userSvc); !ok {
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the session subject is an admin.
func RequireAdmin(userSvc portssvc.UserReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadUser(c, userSvc)
		if !ok {
			return
		}
		if !user.IsAdmin() {
			GetLoggerFromContext(c).Warn("Admin access denied", slog.String("role", string(user.Role)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required", "code": apperrors.CodeForbidden})
			return
		}
		c.Next()
	}
}

func loadUser(c *gin.Context, userSvc portssvc.UserReaderSvc) (*domain.User, bool) {
	if user, ok := GetUserFromContext(c); ok {
		return user, true
	}
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No active session found", "code": apperrors.CodeNoSession})
		return nil, false
	}
	user, err := userSvc.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User account not found.", "code": apperrors.CodeUserNotFound})
			return nil, false
		}
		GetLoggerFromContext(c).Error("Failed to load session user", slog.String("error", err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user", "code": apperrors.CodeInternal})
		return nil, false
	}
	if user.Disabled {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Your account has been disabled.", "code": apperrors.CodeUserDisabled})
		return nil, false
	}
	withUser(c, user)
	return user, true
}
