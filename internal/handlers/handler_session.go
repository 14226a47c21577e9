package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/dto"
	"github.com/SscSPs/etsy_atlas/internal/middleware"
	"github.com/gin-gonic/gin"
)

const expiresAtFormat = "2006-01-02T15:04:05.000Z07:00"

// sessionHandler serves the session endpoint and the Google code exchange.
type sessionHandler struct {
	sessionService     portssvc.SessionSvcFacade
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	cookie             middleware.SessionCookie
	isProduction       bool
}

func newSessionHandler(
	sessionService portssvc.SessionSvcFacade,
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	cookie middleware.SessionCookie,
	isProduction bool,
) *sessionHandler {
	return &sessionHandler{
		sessionService:     sessionService,
		googleOAuthService: googleOAuthService,
		cookie:             cookie,
		isProduction:       isProduction,
	}
}

// RegisterSessionRoutes registers the session endpoint under /api/auth. Session
// creation is wrapped by createLimit when it is non-nil.
func RegisterSessionRoutes(
	r gin.IRouter,
	sessionService portssvc.SessionSvcFacade,
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	cookie middleware.SessionCookie,
	isProduction bool,
	createLimit gin.HandlerFunc,
) {
	h := newSessionHandler(sessionService, googleOAuthService, cookie, isProduction)

	create := []gin.HandlerFunc{h.createSession}
	exchange := []gin.HandlerFunc{h.exchangeCodeGoogle}
	if createLimit != nil {
		create = append([]gin.HandlerFunc{createLimit}, create...)
		exchange = append([]gin.HandlerFunc{createLimit}, exchange...)
	}

	auth := r.Group("/api/auth")
	{
		auth.POST("/session", create...)
		auth.GET("/session", h.verifySession)
		auth.DELETE("/session", h.destroySession)
		auth.PATCH("/session", h.refreshSession)
		auth.POST("/google/exchange-code", exchange...)
	}
}

func (h *sessionHandler) details(err error) string {
	if h.isProduction || err == nil {
		return ""
	}
	return err.Error()
}

func (h *sessionHandler) fail(c *gin.Context, err error) {
	status, code, msg := apperrors.IdentityErrorCode(err)
	c.JSON(status, dto.SessionEnvelope{Success: false, Error: msg, Code: code, Details: h.details(err)})
}

func (h *sessionHandler) issue(c *gin.Context, issued *domain.IssuedSession) {
	h.cookie.Set(c, issued.Token, issued.ExpiresIn)
	c.JSON(http.StatusOK, dto.SessionEnvelope{
		Success:   true,
		Message:   "Session created successfully",
		User:      dto.ToSessionUser(&issued.Session),
		ExpiresIn: int64(issued.ExpiresIn / time.Second),
		ExpiresAt: issued.Session.ExpiresAt.UTC().Format(expiresAtFormat),
	})
}

// createSession godoc
// @Summary Create a session
// @Description Verifies the identity-provider ID token and sets the session cookie
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer <id token>"
// @Success 200 {object} dto.SessionEnvelope
// @Failure 401 {object} dto.SessionEnvelope
// @Failure 403 {object} dto.SessionEnvelope "Account disabled"
// @Failure 429 {object} dto.SessionEnvelope
// @Failure 500 {object} dto.SessionEnvelope "Server configuration error"
// @Router /api/auth/session [post]
func (h *sessionHandler) createSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	issued, err := h.sessionService.CreateSession(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		logger.Warn("Session creation failed", slog.String("error", err.Error()))
		h.fail(c, err)
		return
	}

	logger.Info("Session created", slog.String("user_id", issued.Session.UserID))
	h.issue(c, issued)
}

// verifySession godoc
// @Summary Verify the current session
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SessionEnvelope
// @Failure 401 {object} dto.SessionEnvelope
// @Failure 500 {object} dto.SessionEnvelope "Session store unavailable"
// @Router /api/auth/session [get]
func (h *sessionHandler) verifySession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	authenticated := false

	token := h.cookie.Read(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, dto.SessionEnvelope{
			Success:       false,
			Error:         "No active session found",
			Code:          apperrors.CodeNoSession,
			Authenticated: &authenticated,
		})
		return
	}

	session, err := h.sessionService.VerifySession(c.Request.Context(), token)
	if err != nil && !apperrors.IsCredentialError(err) {
		logger.Error("Session verification could not complete", slog.String("error", err.Error()))
		h.fail(c, err)
		return
	}
	if err != nil {
		logger.Warn("Session verification failed", slog.String("error", err.Error()))
		h.cookie.Clear(c)
		c.JSON(http.StatusUnauthorized, dto.SessionEnvelope{
			Success:       false,
			Error:         "Invalid or expired session",
			Code:          apperrors.CodeInvalidSession,
			Authenticated: &authenticated,
			Details:       h.details(err),
		})
		return
	}

	authenticated = true
	c.JSON(http.StatusOK, dto.SessionEnvelope{
		Success:       true,
		Authenticated: &authenticated,
		User:          dto.ToSessionUser(session),
		ExpiresAt:     session.ExpiresAt.UTC().Format(expiresAtFormat),
	})
}

// destroySession godoc
// @Summary Sign out
// @Description Clears the session cookie. Always succeeds.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SessionEnvelope
// @Router /api/auth/session [delete]
func (h *sessionHandler) destroySession(c *gin.Context) {
	h.cookie.Clear(c)
	c.JSON(http.StatusOK, dto.SessionEnvelope{Success: true, Message: "Signed out successfully"})
}

// refreshSession godoc
// @Summary Refresh the current session
// @Description Re-issues a session artifact with a fresh expiry for the cookie's subject
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SessionEnvelope
// @Failure 401 {object} dto.SessionEnvelope
// @Failure 500 {object} dto.SessionEnvelope "Session store unavailable"
// @Router /api/auth/session [patch]
func (h *sessionHandler) refreshSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	token := h.cookie.Read(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, dto.SessionEnvelope{
			Success: false,
			Error:   "No active session to refresh",
			Code:    apperrors.CodeNoSession,
		})
		return
	}

	issued, err := h.sessionService.RefreshSession(c.Request.Context(), token)
	if err != nil && !apperrors.IsCredentialError(err) {
		logger.Error("Session refresh could not complete", slog.String("error", err.Error()))
		h.fail(c, err)
		return
	}
	if err != nil {
		logger.Warn("Session refresh failed", slog.String("error", err.Error()))
		h.cookie.Clear(c)
		c.JSON(http.StatusUnauthorized, dto.SessionEnvelope{
			Success: false,
			Error:   "Failed to refresh session",
			Code:    apperrors.CodeRefreshFailed,
			Details: h.details(err),
		})
		return
	}

	h.cookie.Set(c, issued.Token, issued.ExpiresIn)
	c.JSON(http.StatusOK, dto.SessionEnvelope{
		Success:   true,
		Message:   "Session refreshed",
		User:      dto.ToSessionUser(&issued.Session),
		ExpiresIn: int64(issued.ExpiresIn / time.Second),
		ExpiresAt: issued.Session.ExpiresAt.UTC().Format(expiresAtFormat),
	})
}

// exchangeCodeGoogle godoc
// @Summary Exchange a Google authorization code for a session
// @Description Exchanges the code, verifies the returned ID token and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.SessionEnvelope
// @Failure 400 {object} dto.SessionEnvelope "Invalid request"
// @Failure 401 {object} dto.SessionEnvelope
// @Failure 500 {object} dto.SessionEnvelope "Server configuration error"
// @Router /api/auth/google/exchange-code [post]
func (h *sessionHandler) exchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for exchange code request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.SessionEnvelope{
			Success: false,
			Error:   "Invalid request: authorization code is required",
			Code:    apperrors.CodeValidation,
			Details: h.details(err),
		})
		return
	}

	token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange Google authorization code", slog.String("error", err.Error()))
		h.fail(c, err)
		return
	}

	idToken, err := h.googleOAuthService.ExtractIDToken(token)
	if err != nil {
		logger.Error("Google token response carried no ID token", slog.String("error", err.Error()))
		h.fail(c, err)
		return
	}

	issued, err := h.sessionService.CreateSessionFromIDToken(ctx, idToken)
	if err != nil {
		logger.Warn("Session creation from Google ID token failed", slog.String("error", err.Error()))
		h.fail(c, err)
		return
	}

	logger.Info("Session created from Google code exchange", slog.String("user_id", issued.Session.UserID))
	h.issue(c, issued)
}
