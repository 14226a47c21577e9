package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookie describes the cookie carrying the session artifact.
type SessionCookie struct {
	Name   string
	Secure bool
}

// Read returns the cookie value, or "" when absent.
func (sc SessionCookie) Read(c *gin.Context) string {
	v, err := c.Cookie(sc.Name)
	if err != nil {
		return ""
	}
	return v
}

// Set writes an httpOnly, SameSite=Lax cookie scoped to the whole site.
func (sc SessionCookie) Set(c *gin.Context, token string, maxAge time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, token, int(maxAge.Seconds()), "/", "", sc.Secure, true)
}

// Clear expires the cookie.
func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}
