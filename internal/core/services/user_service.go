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
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/dto"
)

type UserService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	defaultRole domain.UserRole
	now         func() time.Time
}

// NewUserService creates a user service. The first account ever created is an
// admin; later sign-ups receive defaultRole.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, defaultRole domain.UserRole) *UserService {
	if !defaultRole.IsValid() {
		defaultRole = domain.RoleUser
	}
	return &UserService{userRepo: userRepo, defaultRole: defaultRole, now: time.Now}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		}
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users in service: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// EnsureUser returns the account for identity, creating it on first sign-in.
// Disabled accounts are rejected with apperrors.ErrUserDisabled.
func (s *UserService) EnsureUser(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	if identity.Subject == "" {
		return nil, fmt.Errorf("identity has no subject: %w", apperrors.ErrInvalidToken)
	}
	now := s.now().UTC()

	existing, err := s.userRepo.FindUserByID(ctx, identity.Subject)
	switch {
	case err == nil:
		return s.recordLogin(ctx, existing, now)
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up user on sign-in", slog.String("user_id", identity.Subject))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	count, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count users")
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	role := s.defaultRole
	if count == 0 {
		role = domain.RoleAdmin
	}

	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = identity.Email
	}
	user := domain.User{
		UserID:      identity.Subject,
		Name:        name,
		Email:       identity.Email,
		Role:        role,
		PhotoURL:    identity.Picture,
		CreatedAt:   now,
		LastLoginAt: &now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Concurrent first sign-in; the other request created the account.
			existing, findErr := s.userRepo.FindUserByID(ctx, identity.Subject)
			if findErr != nil {
				return nil, fmt.Errorf("failed to read concurrently created user: %w", findErr)
			}
			return s.recordLogin(ctx, existing, now)
		}
		s.LogError(ctx, err, "Failed to create user", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}

	s.LogInfo(ctx, "User created on first sign-in", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *UserService) recordLogin(ctx context.Context, user *domain.User, at time.Time) (*domain.User, error) {
	if user.Disabled {
		return nil, fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrUserDisabled)
	}
	if err := s.userRepo.TouchLastLogin(ctx, user.UserID, at); err != nil {
		// Sign-in still succeeds without the bookkeeping.
		s.LogError(ctx, err, "Failed to record last login", slog.String("user_id", user.UserID))
		return user, nil
	}
	user.LastLoginAt = &at
	return user, nil
}

func (s *UserService) requireAdmin(ctx context.Context, requestingUserID string) (*domain.User, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("requesting user %s: %w", requestingUserID, apperrors.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to load requesting user: %w", err)
	}
	if requester.Disabled {
		return nil, fmt.Errorf("requesting user %s: %w", requestingUserID, apperrors.ErrUserDisabled)
	}
	if !requester.IsAdmin() {
		return nil, fmt.Errorf("user %s is not an admin: %w", requestingUserID, apperrors.ErrForbidden)
	}
	return requester, nil
}

func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if _, err := s.requireAdmin(ctx, requestingUserID); err != nil {
		return nil, err
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("name must not be empty: %w", apperrors.ErrValidation)
		}
		user.Name = name
	}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		if !role.IsValid() {
			return nil, fmt.Errorf("unknown role %q: %w", *req.Role, apperrors.ErrValidation)
		}
		if userID == requestingUserID && role != domain.RoleAdmin {
			return nil, fmt.Errorf("admins cannot demote themselves: %w", apperrors.ErrValidation)
		}
		user.Role = role
	}
	if req.Disabled != nil {
		if userID == requestingUserID && *req.Disabled {
			return nil, fmt.Errorf("admins cannot disable themselves: %w", apperrors.ErrValidation)
		}
		user.Disabled = *req.Disabled
	}

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user in service: %w", err)
	}
	s.LogInfo(ctx, "User updated", slog.String("user_id", userID), slog.String("updated_by", requestingUserID))
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if _, err := s.requireAdmin(ctx, requestingUserID); err != nil {
		return err
	}
	if userID == requestingUserID {
		return fmt.Errorf("admins cannot delete themselves: %w", apperrors.ErrForbidden)
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		}
		return fmt.Errorf("failed to delete user in service: %w", err)
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID), slog.String("deleted_by", requestingUserID))
	return nil
}

// RevokeSessions invalidates every session of userID issued before now.
// Users may revoke their own sessions; revoking another user's needs admin.
func (s *UserService) RevokeSessions(ctx context.Context, userID string, requestingUserID string) error {
	if userID != requestingUserID {
		if _, err := s.requireAdmin(ctx, requestingUserID); err != nil {
			return err
		}
	}

	if err := s.userRepo.RevokeSessions(ctx, userID, s.now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to revoke sessions", slog.String("user_id", userID))
		}
		return fmt.Errorf("failed to revoke sessions in service: %w", err)
	}
	s.LogInfo(ctx, "Sessions revoked", slog.String("user_id", userID), slog.String("revoked_by", requestingUserID))
	return nil
}
