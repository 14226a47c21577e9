package identity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/middleware"
	"google.golang.org/api/option"
)

// firebaseTokenClient is the part of *auth.Client used here.
type firebaseTokenClient interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier verifies Firebase Authentication ID tokens, including the
// revocation and disabled-account checks.
type FirebaseVerifier struct {
	client firebaseTokenClient
}

var _ portssvc.IdentityVerifier = (*FirebaseVerifier)(nil)

// NewFirebaseVerifier initialises the Firebase Admin SDK. credentialsJSON may be
// empty, in which case Application Default Credentials are used.
func NewFirebaseVerifier(ctx context.Context, projectID string, credentialsJSON string) (*FirebaseVerifier, error) {
	if projectID == "" && credentialsJSON == "" {
		return nil, fmt.Errorf("%w: FIREBASE_PROJECT_ID or FIREBASE_SERVICE_ACCOUNT must be set", apperrors.ErrProviderMisconfigured)
	}

	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to initialise firebase app: %v", apperrors.ErrProviderMisconfigured, err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to initialise firebase auth: %v", apperrors.ErrProviderMisconfigured, err)
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*domain.Identity, error) {
	if v == nil || v.client == nil {
		return nil, apperrors.ErrProviderMisconfigured
	}
	if idToken == "" {
		return nil, apperrors.ErrEmptyToken
	}

	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		classified := classifyFirebaseError(err)
		middleware.GetLoggerFromCtx(ctx).Warn("Firebase ID token rejected", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", classified, err)
	}

	identity := &domain.Identity{
		Subject:       token.UID,
		Email:         claimString(token.Claims, "email"),
		EmailVerified: claimBool(token.Claims, "email_verified"),
		Name:          claimString(token.Claims, "name"),
		Picture:       claimString(token.Claims, "picture"),
	}
	if token.AuthTime > 0 {
		identity.AuthTime = time.Unix(token.AuthTime, 0).UTC()
	}
	return identity, nil
}

func classifyFirebaseError(err error) error {
	switch {
	case auth.IsIDTokenExpired(err):
		return apperrors.ErrTokenExpired
	case auth.IsIDTokenRevoked(err):
		return apperrors.ErrTokenRevoked
	case auth.IsUserDisabled(err):
		return apperrors.ErrUserDisabled
	case auth.IsUserNotFound(err):
		return apperrors.ErrUserNotFound
	case auth.IsIDTokenInvalid(err):
		return apperrors.ErrInvalidToken
	case auth.IsProjectNotFound(err), auth.IsConfigurationNotFound(err):
		return apperrors.ErrProviderMisconfigured
	case isUnavailable(err):
		return apperrors.ErrProviderUnavailable
	case looksLikeConfigError(err):
		return apperrors.ErrProviderMisconfigured
	default:
		return apperrors.ErrInvalidToken
	}
}
