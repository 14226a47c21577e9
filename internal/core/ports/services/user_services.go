package services

import (
	"context"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/SscSPs/etsy_atlas/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// EnsureUser creates the account for a first-time sign-in or records the
	// login of a returning user.
	EnsureUser(ctx context.Context, identity domain.Identity) (*domain.User, error)

	// UpdateUser updates an existing user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser removes a user.
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error

	// RevokeSessions invalidates every session issued to the user so far.
	RevokeSessions(ctx context.Context, userID string, requestingUserID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
}
