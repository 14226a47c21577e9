// Package triggers adds document-write triggers to an order repository.
package triggers

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	"github.com/SscSPs/etsy_atlas/internal/middleware"
)

// ObservedOrderRepository decorates an order repository and notifies the
// registered observers after every successful write, synchronously and in
// registration order. Writes made by an observer trigger a new notification.
type ObservedOrderRepository struct {
	portsrepo.OrderRepositoryFacade

	mu        sync.RWMutex
	observers []portsrepo.OrderWriteObserver
}

var _ portsrepo.OrderRepositoryFacade = (*ObservedOrderRepository)(nil)

// NewObservedOrderRepository wraps inner.
func NewObservedOrderRepository(inner portsrepo.OrderRepositoryFacade) *ObservedOrderRepository {
	return &ObservedOrderRepository{OrderRepositoryFacade: inner}
}

// Observe registers observers for subsequent writes.
func (r *ObservedOrderRepository) Observe(observers ...portsrepo.OrderWriteObserver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, observers...)
}

func (r *ObservedOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	if err := r.OrderRepositoryFacade.SaveOrder(ctx, order); err != nil {
		return err
	}
	r.emitAfterWrite(ctx, domain.OrderCreated, order.OrderID, nil)
	return nil
}

func (r *ObservedOrderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	before := r.snapshot(ctx, order.OrderID)
	if err := r.OrderRepositoryFacade.UpdateOrder(ctx, order); err != nil {
		return err
	}
	r.emitAfterWrite(ctx, domain.OrderUpdated, order.OrderID, before)
	return nil
}

func (r *ObservedOrderRepository) MergeOrderFields(ctx context.Context, orderID string, patch domain.OrderFieldPatch) error {
	before := r.snapshot(ctx, orderID)
	if err := r.OrderRepositoryFacade.MergeOrderFields(ctx, orderID, patch); err != nil {
		return err
	}
	r.emitAfterWrite(ctx, domain.OrderUpdated, orderID, before)
	return nil
}

func (r *ObservedOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	before := r.snapshot(ctx, orderID)
	if err := r.OrderRepositoryFacade.DeleteOrder(ctx, orderID); err != nil {
		return err
	}
	r.emit(ctx, domain.OrderWriteEvent{Kind: domain.OrderDeleted, OrderID: orderID, Before: before})
	return nil
}

func (r *ObservedOrderRepository) SaveOrdersBatch(ctx context.Context, orders []domain.Order) error {
	if err := r.OrderRepositoryFacade.SaveOrdersBatch(ctx, orders); err != nil {
		return err
	}
	for _, o := range orders {
		r.emitAfterWrite(ctx, domain.OrderCreated, o.OrderID, nil)
	}
	return nil
}

// NotifyCreated emits creation events for orders written by another path,
// such as the seed batch, that bypassed this decorator.
func (r *ObservedOrderRepository) NotifyCreated(ctx context.Context, orderIDs ...string) {
	for _, id := range orderIDs {
		r.emitAfterWrite(ctx, domain.OrderCreated, id, nil)
	}
}

func (r *ObservedOrderRepository) snapshot(ctx context.Context, orderID string) *domain.Order {
	o, err := r.OrderRepositoryFacade.FindOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Warn("Failed to read order snapshot", slog.String("order_id", orderID), slog.String("error", err.Error()))
		}
		return nil
	}
	return o
}

func (r *ObservedOrderRepository) emitAfterWrite(ctx context.Context, kind domain.OrderWriteKind, orderID string, before *domain.Order) {
	after := r.snapshot(ctx, orderID)
	if after == nil {
		return
	}
	r.emit(ctx, domain.OrderWriteEvent{Kind: kind, OrderID: orderID, Before: before, After: after})
}

func (r *ObservedOrderRepository) emit(ctx context.Context, event domain.OrderWriteEvent) {
	r.mu.RLock()
	observers := make([]portsrepo.OrderWriteObserver, len(r.observers))
	copy(observers, r.observers)
	r.mu.RUnlock()

	for _, obs := range observers {
		obs.OnOrderWritten(ctx, event)
	}
}
