package middleware

import (
	"log/slog"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/dto"
	"github.com/gin-gonic/gin"
)

// SessionAuth requires a valid session cookie. A rejected credential clears the
// cookie and aborts with a JSON 401 carrying a stable code. Store or upstream
// failures abort with a 5xx and leave the cookie in place.
func SessionAuth(sessionSvc portssvc.SessionSvcFacade, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		token := cookie.Read(c)
		if token == "" {
			status, code, msg := apperrors.IdentityErrorCode(apperrors.ErrNoSession)
			authenticated := false
			c.AbortWithStatusJSON(status, dto.SessionEnvelope{Success: false, Error: msg, Code: code, Authenticated: &authenticated})
			return
		}

		session, err := sessionSvc.VerifySession(c.Request.Context(), token)
		if err != nil {
			if apperrors.IsCredentialError(err) {
				logger.Warn("Session verification failed", slog.String("error", err.Error()))
				cookie.Clear(c)
			} else {
				logger.Error("Session verification could not complete", slog.String("error", err.Error()))
			}
			status, code, msg := apperrors.IdentityErrorCode(err)
			authenticated := false
			c.AbortWithStatusJSON(status, dto.SessionEnvelope{Success: false, Error: msg, Code: code, Authenticated: &authenticated})
			return
		}

		withSession(c, session)
		c.Next()
	}
}
