package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type CapitalRepository struct {
	store *Store
}

var _ portsrepo.CapitalRepositoryFacade = (*CapitalRepository)(nil)

func (r *CapitalRepository) FindCapitalEntryByID(_ context.Context, entryID string) (*domain.CapitalEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.capital[entryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *CapitalRepository) ListCapitalEntries(_ context.Context, limit int, offset int) ([]domain.CapitalEntry, error) {
	r.store.mu.RLock()
	all := make([]domain.CapitalEntry, 0, len(r.store.capital))
	for _, e := range r.store.capital {
		all = append(all, e)
	}
	r.store.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].TransactionDate.Equal(all[j].TransactionDate) {
			return all[i].TransactionDate.After(all[j].TransactionDate)
		}
		return all[i].EntryID > all[j].EntryID
	})
	start, end := clampPage(limit, offset, len(all))
	return all[start:end], nil
}

func (r *CapitalRepository) SumCapitalByType(_ context.Context) (map[domain.CapitalType]decimal.Decimal, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sums := map[domain.CapitalType]decimal.Decimal{
		domain.CapitalDeposit:    decimal.Zero,
		domain.CapitalWithdrawal: decimal.Zero,
	}
	for _, e := range r.store.capital {
		sums[e.Type] = sums[e.Type].Add(e.Amount)
	}
	return sums, len(r.store.capital), nil
}

func (r *CapitalRepository) SaveCapitalEntry(_ context.Context, entry domain.CapitalEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.capital[entry.EntryID]; exists {
		return apperrors.ErrDuplicate
	}
	r.store.capital[entry.EntryID] = entry
	return nil
}

func (r *CapitalRepository) DeleteCapitalEntry(_ context.Context, entryID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e, ok := r.store.capital[entryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if e.Locked {
		return apperrors.ErrLocked
	}
	delete(r.store.capital, entryID)
	return nil
}
