package services

import (
	"context"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"golang.org/x/oauth2"
)

// IdentityVerifier verifies a token minted by an external identity provider.
type IdentityVerifier interface {
	// VerifyIDToken checks signature, audience, expiry and revocation of idToken.
	// Failures are reported with the identity sentinels in apperrors.
	VerifyIDToken(ctx context.Context, idToken string) (*domain.Identity, error)
}

// SessionSvcFacade creates and verifies session artifacts.
type SessionSvcFacade interface {
	// CreateSession verifies the bearer token in authorizationHeader and mints a session.
	CreateSession(ctx context.Context, authorizationHeader string) (*domain.IssuedSession, error)

	// CreateSessionFromIDToken verifies idToken and mints a session.
	CreateSessionFromIDToken(ctx context.Context, idToken string) (*domain.IssuedSession, error)

	// VerifySession decodes and checks a session artifact.
	VerifySession(ctx context.Context, token string) (*domain.Session, error)

	// RefreshSession verifies token and mints a fresh artifact for the same subject.
	RefreshSession(ctx context.Context, token string) (*domain.IssuedSession, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ExtractIDToken returns the raw OpenID Connect token carried by an OAuth token.
	ExtractIDToken(token *oauth2.Token) (string, error)
}
