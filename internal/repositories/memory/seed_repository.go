package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
)

type SeedRepository struct {
	store *Store
}

var _ portsrepo.SeedRepository = (*SeedRepository)(nil)

// SeedBatch inserts users and orders under one lock; nothing is written if any id collides.
func (r *SeedRepository) SeedBatch(_ context.Context, users []domain.User, orders []domain.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, o := range orders {
		if _, exists := r.store.orders[o.OrderID]; exists {
			return fmt.Errorf("order %s: %w", o.OrderID, apperrors.ErrDuplicate)
		}
	}
	if err := r.store.insertUsersLocked(users); err != nil {
		return err
	}
	return r.store.insertOrdersLocked(orders)
}
