package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
)

type UserRepository struct {
	store *Store
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindUsers(_ context.Context, limit int, offset int) ([]domain.User, error) {
	r.store.mu.RLock()
	all := make([]domain.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		all = append(all, u)
	}
	r.store.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].UserID < all[j].UserID
	})
	start, end := clampPage(limit, offset, len(all))
	return all[start:end], nil
}

func (r *UserRepository) CountUsers(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.users), nil
}

func (r *UserRepository) SaveUser(_ context.Context, user domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.users[user.UserID]; exists {
		return apperrors.ErrDuplicate
	}
	r.store.users[user.UserID] = user
	return nil
}

func (r *UserRepository) UpdateUser(_ context.Context, user domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.UserID]; !ok {
		return apperrors.ErrNotFound
	}
	r.store.users[user.UserID] = user
	return nil
}

func (r *UserRepository) TouchLastLogin(_ context.Context, userID string, at time.Time) error {
	return r.mutate(userID, func(u *domain.User) { u.LastLoginAt = &at })
}

func (r *UserRepository) RevokeSessions(_ context.Context, userID string, at time.Time) error {
	return r.mutate(userID, func(u *domain.User) { u.SessionsRevokedAt = &at })
}

func (r *UserRepository) mutate(userID string, fn func(*domain.User)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	fn(&u)
	r.store.users[userID] = u
	return nil
}

func (r *UserRepository) DeleteUser(_ context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[userID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.store.users, userID)
	return nil
}

func (r *UserRepository) SaveUsersBatch(_ context.Context, users []domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.insertUsersLocked(users)
}

func (s *Store) insertUsersLocked(users []domain.User) error {
	for _, u := range users {
		if _, exists := s.users[u.UserID]; exists {
			return fmt.Errorf("user %s: %w", u.UserID, apperrors.ErrDuplicate)
		}
	}
	for _, u := range users {
		s.users[u.UserID] = u
	}
	return nil
}
