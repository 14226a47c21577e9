package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	"github.com/SscSPs/etsy_atlas/internal/utils/pagination"
)

type OrderRepository struct {
	store *Store
}

var _ portsrepo.OrderRepositoryFacade = (*OrderRepository)(nil)

func (r *OrderRepository) FindOrderByID(_ context.Context, orderID string) (*domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	o, ok := r.store.orders[orderID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return o.Clone(), nil
}

// newerFirst orders by creation time descending with the id as tie-breaker.
func newerFirst(a, b domain.Order) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.OrderID > b.OrderID
}

func matches(o domain.Order, f domain.OrderFilter) bool {
	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	if f.From != nil && o.OrderDate.Before(*f.From) {
		return false
	}
	if f.To != nil && o.OrderDate.After(*f.To) {
		return false
	}
	return true
}

func (r *OrderRepository) sorted(filter domain.OrderFilter) []domain.Order {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Order, 0, len(r.store.orders))
	for _, o := range r.store.orders {
		if matches(o, filter) {
			out = append(out, *o.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return newerFirst(out[i], out[j]) })
	return out
}

func (r *OrderRepository) ListOrders(_ context.Context, filter domain.OrderFilter, limit int, nextToken *string) ([]domain.Order, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	all := r.sorted(filter)

	start := 0
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		pivot := domain.Order{OrderID: cursor.ID, AuditFields: domain.AuditFields{CreatedAt: cursor.At}}
		start = sort.Search(len(all), func(i int) bool { return newerFirst(pivot, all[i]) })
	}

	end := start + limit
	if end >= len(all) {
		return all[start:], nil, nil
	}
	page := all[start:end]
	last := page[len(page)-1]
	token := pagination.EncodeCursor(last.CreatedAt, last.OrderID)
	return page, &token, nil
}

func (r *OrderRepository) ListAllOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	return r.sorted(filter), nil
}

func (r *OrderRepository) CountOrders(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.orders), nil
}

func (r *OrderRepository) SaveOrder(_ context.Context, order domain.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.orders[order.OrderID]; exists {
		return apperrors.ErrDuplicate
	}
	r.store.orders[order.OrderID] = *order.Clone()
	return nil
}

func (r *OrderRepository) UpdateOrder(_ context.Context, order domain.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.orders[order.OrderID]
	if !ok {
		return apperrors.ErrNotFound
	}
	// Derived fields are only written through MergeOrderFields.
	updated := *order.Clone()
	updated.TotalExpenses = existing.TotalExpenses
	updated.Profit = existing.Profit
	updated.CreatedAt = existing.CreatedAt
	r.store.orders[order.OrderID] = updated
	return nil
}

func (r *OrderRepository) MergeOrderFields(_ context.Context, orderID string, patch domain.OrderFieldPatch) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.orders[orderID]
	if !ok {
		return apperrors.ErrNotFound
	}
	patch.Apply(&existing)
	if patch.EditedAt != nil {
		existing.UpdatedAt = *patch.EditedAt
	} else {
		existing.UpdatedAt = time.Now().UTC()
	}
	r.store.orders[orderID] = existing
	return nil
}

func (r *OrderRepository) DeleteOrder(_ context.Context, orderID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.orders[orderID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.store.orders, orderID)
	return nil
}

func (r *OrderRepository) SaveOrdersBatch(_ context.Context, orders []domain.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.insertOrdersLocked(orders)
}

func (s *Store) insertOrdersLocked(orders []domain.Order) error {
	for _, o := range orders {
		if _, exists := s.orders[o.OrderID]; exists {
			return fmt.Errorf("order %s: %w", o.OrderID, apperrors.ErrDuplicate)
		}
	}
	for _, o := range orders {
		s.orders[o.OrderID] = *o.Clone()
	}
	return nil
}
