package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RouteGateConfig names the page paths guarded by RouteGate.
type RouteGateConfig struct {
	ProtectedPrefix string
	LoginPath       string
}

// RouteGate guards page navigation. Unauthenticated visitors of the protected
// prefix are redirected to the login page with a continue parameter; visitors
// of the login page (or the site root) holding a valid session go to the
// protected area. An invalid cookie counts as no session and is cleared. When
// the session cannot be checked at all the gate answers 503 and keeps the cookie.
func RouteGate(sessionSvc portssvc.SessionSvcFacade, cookie SessionCookie, cfg RouteGateConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		protected := path == cfg.ProtectedPrefix || strings.HasPrefix(path, strings.TrimSuffix(cfg.ProtectedPrefix, "/")+"/")
		loginPage := path == cfg.LoginPath || path == "/"

		if !protected && !loginPage {
			c.Next()
			return
		}

		authenticated := false
		if token := cookie.Read(c); token != "" {
			session, err := sessionSvc.VerifySession(c.Request.Context(), token)
			switch {
			case err == nil:
				authenticated = true
				withSession(c, session)
			case apperrors.IsCredentialError(err):
				cookie.Clear(c)
			default:
				GetLoggerFromCtx(c.Request.Context()).Error("Route gate could not verify session", slog.String("error", err.Error()))
				c.AbortWithStatus(http.StatusServiceUnavailable)
				return
			}
		}

		switch {
		case protected && !authenticated:
			target := cfg.LoginPath + "?continue=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
		case loginPage && authenticated:
			c.Redirect(http.StatusFound, cfg.ProtectedPrefix)
			c.Abort()
		default:
			c.Next()
		}
	}
}
