// Package identity verifies ID tokens minted by external identity providers.
package identity

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
)

// Unconfigured is used when no identity provider could be initialised.
// Every verification fails with apperrors.ErrProviderMisconfigured.
type Unconfigured struct {
	Reason string
}

var _ portssvc.IdentityVerifier = Unconfigured{}

func (u Unconfigured) VerifyIDToken(_ context.Context, _ string) (*domain.Identity, error) {
	return nil, apperrors.ErrProviderMisconfigured
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func claimBool(claims map[string]interface{}, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	return false
}

func claimTime(claims map[string]interface{}, key string) time.Time {
	switch v := claims[key].(type) {
	case float64:
		return time.Unix(int64(v), 0).UTC()
	case int64:
		return time.Unix(v, 0).UTC()
	}
	return time.Time{}
}

// looksLikeConfigError reports whether a provider error is caused by server
// configuration (credentials, project id, audience) rather than the token.
func looksLikeConfigError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, hint := range []string{"credential", "project id", "projectid", "service account", "audience not provided", "private key"} {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}

// isUnavailable reports whether the provider could not be reached in time,
// which says nothing about the token itself.
func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
