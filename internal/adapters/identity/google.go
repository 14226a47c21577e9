package identity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/middleware"
	"google.golang.org/api/idtoken"
)

type validateFunc func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// GoogleVerifier verifies Google-issued OpenID Connect ID tokens for one client id.
type GoogleVerifier struct {
	clientID string
	validate validateFunc
}

var _ portssvc.IdentityVerifier = (*GoogleVerifier)(nil)

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID, validate: idtoken.Validate}
}

func (v *GoogleVerifier) VerifyIDToken(ctx context.Context, idToken string) (*domain.Identity, error) {
	if v.clientID == "" {
		return nil, fmt.Errorf("%w: GOOGLE_CLIENT_ID is not set", apperrors.ErrProviderMisconfigured)
	}
	if idToken == "" {
		return nil, apperrors.ErrEmptyToken
	}

	payload, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		if isUnavailable(err) {
			middleware.GetLoggerFromCtx(ctx).Error("Google ID token could not be validated", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: %v", apperrors.ErrProviderUnavailable, err)
		}
		middleware.GetLoggerFromCtx(ctx).Warn("Google ID token rejected", slog.String("error", err.Error()))
		// idtoken reports expiry only through its message, e.g. "idtoken: token expired".
		if strings.Contains(strings.ToLower(err.Error()), "expired") {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	return &domain.Identity{
		Subject:       payload.Subject,
		Email:         claimString(payload.Claims, "email"),
		EmailVerified: claimBool(payload.Claims, "email_verified"),
		Name:          claimString(payload.Claims, "name"),
		Picture:       claimString(payload.Claims, "picture"),
		AuthTime:      claimTime(payload.Claims, "auth_time"),
	}, nil
}
