package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/utils"
)

const bearerPrefix = "Bearer "

// SessionConfig holds the signing parameters of session artifacts.
type SessionConfig struct {
	Secret string
	Issuer string
	Expiry time.Duration
}

// sessionService exchanges identity-provider tokens for signed session
// artifacts and verifies them on later requests.
type sessionService struct {
	BaseService
	cfg      SessionConfig
	verifier portssvc.IdentityVerifier
	users    portssvc.UserSvcFacade
}

func NewSessionService(cfg SessionConfig, verifier portssvc.IdentityVerifier, users portssvc.UserSvcFacade) portssvc.SessionSvcFacade {
	return &sessionService{cfg: cfg, verifier: verifier, users: users}
}

var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, strings.TrimSpace(bearerPrefix)) {
		return "", apperrors.ErrEmptyToken
	}
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", apperrors.ErrMissingAuthHeader
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", apperrors.ErrEmptyToken
	}
	return token, nil
}

func (s *sessionService) CreateSession(ctx context.Context, authorizationHeader string) (*domain.IssuedSession, error) {
	idToken, err := bearerToken(authorizationHeader)
	if err != nil {
		return nil, err
	}
	return s.CreateSessionFromIDToken(ctx, idToken)
}

func (s *sessionService) CreateSessionFromIDToken(ctx context.Context, idToken string) (*domain.IssuedSession, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, apperrors.ErrEmptyToken
	}
	if s.verifier == nil {
		return nil, fmt.Errorf("no identity verifier: %w", apperrors.ErrProviderMisconfigured)
	}

	identity, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrProviderMisconfigured) {
			s.LogError(ctx, err, "Identity provider is misconfigured")
		} else {
			s.LogWarn(ctx, "Identity token rejected", slog.String("error", err.Error()))
		}
		return nil, err
	}

	user, err := s.users.EnsureUser(ctx, *identity)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	claims := utils.SessionClaims{
		Email:         identity.Email,
		EmailVerified: identity.EmailVerified,
		Name:          user.Name,
		Picture:       identity.Picture,
	}
	issued, err := s.issue(user.UserID, claims)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign session", slog.String("user_id", user.UserID))
		return nil, err
	}
	s.LogInfo(ctx, "Session created", slog.String("user_id", user.UserID))
	return issued, nil
}

func (s *sessionService) issue(subject string, claims utils.SessionClaims) (*domain.IssuedSession, error) {
	token, signed, err := utils.GenerateSessionToken(subject, claims, s.cfg.Secret, s.cfg.Expiry, s.cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return &domain.IssuedSession{
		Token:     token,
		Session:   toSession(signed),
		ExpiresIn: s.cfg.Expiry,
	}, nil
}

func toSession(c *utils.SessionClaims) domain.Session {
	session := domain.Session{
		SessionID:     c.ID,
		UserID:        c.Subject,
		Email:         c.Email,
		EmailVerified: c.EmailVerified,
		Name:          c.Name,
		Picture:       c.Picture,
	}
	if c.IssuedAt != nil {
		session.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		session.ExpiresAt = c.ExpiresAt.Time
	}
	return session
}

// VerifySession checks the artifact signature and expiry, then that its
// subject still exists, is enabled and has not revoked its sessions since
// the artifact was issued.
func (s *sessionService) VerifySession(ctx context.Context, token string) (*domain.Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperrors.ErrNoSession
	}

	claims, err := utils.ParseSessionToken(token, s.cfg.Secret, s.cfg.Issuer)
	if err != nil {
		s.LogDebug(ctx, "Session artifact rejected", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidSession, err)
	}
	session := toSession(claims)

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s no longer exists", apperrors.ErrInvalidSession, session.UserID)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.Disabled {
		return nil, fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrUserDisabled)
	}
	// iat has second precision, so the revocation second itself is revoked.
	if user.SessionsRevokedAt != nil && session.IssuedAt.Before(user.SessionsRevokedAt.Add(time.Second-1).Truncate(time.Second)) {
		return nil, fmt.Errorf("session issued before revocation: %w", apperrors.ErrTokenRevoked)
	}
	return &session, nil
}

// RefreshSession mints a new artifact with the claims of a still-valid one.
func (s *sessionService) RefreshSession(ctx context.Context, token string) (*domain.IssuedSession, error) {
	session, err := s.VerifySession(ctx, token)
	if err != nil {
		return nil, err
	}
	claims := utils.SessionClaims{
		Email:         session.Email,
		EmailVerified: session.EmailVerified,
		Name:          session.Name,
		Picture:       session.Picture,
	}
	issued, err := s.issue(session.UserID, claims)
	if err != nil {
		s.LogError(ctx, err, "Failed to refresh session", slog.String("user_id", session.UserID))
		return nil, err
	}
	return issued, nil
}
