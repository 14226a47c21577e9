package triggers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	"github.com/SscSPs/etsy_atlas/internal/repositories/memory"
	"github.com/SscSPs/etsy_atlas/internal/repositories/triggers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []domain.OrderWriteEvent
}

func (r *recorder) OnOrderWritten(_ context.Context, event domain.OrderWriteEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) kinds() []domain.OrderWriteKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.OrderWriteKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func newOrder(id string, price int64) domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		OrderID:     id,
		EtsyOrderID: "E-" + id,
		OrderDate:   now,
		Status:      domain.OrderPending,
		OrderPrice:  decimal.NewFromInt(price),
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
}

func TestObservedOrderRepository_EmitsCommittedWrites(t *testing.T) {
	ctx := context.Background()
	repo := triggers.NewObservedOrderRepository(memory.NewRepositoryProvider().OrderRepo)
	rec := &recorder{}
	repo.Observe(rec)

	require.NoError(t, repo.SaveOrder(ctx, newOrder("o-1", 50)))

	updated := newOrder("o-1", 75)
	require.NoError(t, repo.UpdateOrder(ctx, updated))
	require.NoError(t, repo.DeleteOrder(ctx, "o-1"))

	assert.Equal(t, []domain.OrderWriteKind{domain.OrderCreated, domain.OrderUpdated, domain.OrderDeleted}, rec.kinds())

	created := rec.events[0]
	assert.Nil(t, created.Before)
	require.NotNil(t, created.After)
	assert.True(t, created.After.OrderPrice.Equal(decimal.NewFromInt(50)))

	update := rec.events[1]
	require.NotNil(t, update.Before)
	require.NotNil(t, update.After)
	assert.True(t, update.Before.OrderPrice.Equal(decimal.NewFromInt(50)))
	assert.True(t, update.After.OrderPrice.Equal(decimal.NewFromInt(75)))

	deleted := rec.events[2]
	assert.NotNil(t, deleted.Before)
	assert.Nil(t, deleted.After)
}

func TestObservedOrderRepository_FailedWritesAreSilent(t *testing.T) {
	ctx := context.Background()
	repo := triggers.NewObservedOrderRepository(memory.NewRepositoryProvider().OrderRepo)
	rec := &recorder{}
	repo.Observe(rec)

	assert.ErrorIs(t, repo.UpdateOrder(ctx, newOrder("missing", 10)), apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteOrder(ctx, "missing"), apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.MergeOrderFields(ctx, "missing", domain.OrderFieldPatch{}), apperrors.ErrNotFound)

	require.NoError(t, repo.SaveOrder(ctx, newOrder("o-2", 10)))
	assert.ErrorIs(t, repo.SaveOrder(ctx, newOrder("o-2", 10)), apperrors.ErrDuplicate)

	assert.Equal(t, []domain.OrderWriteKind{domain.OrderCreated}, rec.kinds())
}

func TestObservedOrderRepository_ObserverWritesRetrigger(t *testing.T) {
	ctx := context.Background()
	repo := triggers.NewObservedOrderRepository(memory.NewRepositoryProvider().OrderRepo)

	rec := &recorder{}
	var patched bool
	repo.Observe(portsrepo.OrderWriteObserverFunc(func(ctx context.Context, e domain.OrderWriteEvent) {
		if e.After == nil || patched {
			return
		}
		patched = true
		total := decimal.NewFromInt(5)
		require.NoError(t, repo.MergeOrderFields(ctx, e.OrderID, domain.OrderFieldPatch{TotalExpenses: &total}))
	}), rec)

	require.NoError(t, repo.SaveOrder(ctx, newOrder("o-3", 20)))

	// the merge made by the first observer is delivered before the outer creation event reaches rec
	assert.Equal(t, []domain.OrderWriteKind{domain.OrderUpdated, domain.OrderCreated}, rec.kinds())
	stored, err := repo.FindOrderByID(ctx, "o-3")
	require.NoError(t, err)
	assert.True(t, stored.TotalExpenses.Valid)
	assert.True(t, stored.TotalExpenses.Decimal.Equal(decimal.NewFromInt(5)))
}

func TestObservedOrderRepository_BatchAndNotifyCreated(t *testing.T) {
	ctx := context.Background()
	provider := memory.NewRepositoryProvider()
	repo := triggers.NewObservedOrderRepository(provider.OrderRepo)
	rec := &recorder{}
	repo.Observe(rec)

	require.NoError(t, repo.SaveOrdersBatch(ctx, []domain.Order{newOrder("b-1", 1), newOrder("b-2", 2)}))
	assert.Len(t, rec.events, 2)

	// written behind the decorator's back
	require.NoError(t, provider.OrderRepo.SaveOrder(ctx, newOrder("s-1", 3)))
	assert.Len(t, rec.events, 2)

	repo.NotifyCreated(ctx, "s-1", "does-not-exist")
	require.Len(t, rec.events, 3)
	assert.Equal(t, "s-1", rec.events[2].OrderID)
	assert.Equal(t, domain.OrderCreated, rec.events[2].Kind)
}
