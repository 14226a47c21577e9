package repositories

import (
	"context"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CapitalReader defines read operations for capital entries
type CapitalReader interface {
	// FindCapitalEntryByID retrieves a specific capital entry.
	FindCapitalEntryByID(ctx context.Context, entryID string) (*domain.CapitalEntry, error)

	// ListCapitalEntries retrieves a paginated list of entries, newest transaction first.
	ListCapitalEntries(ctx context.Context, limit int, offset int) ([]domain.CapitalEntry, error)

	// SumCapitalByType returns the summed amount and entry count per capital type.
	SumCapitalByType(ctx context.Context) (map[domain.CapitalType]decimal.Decimal, int, error)
}

// CapitalWriter defines write operations for capital entries
type CapitalWriter interface {
	SaveCapitalEntry(ctx context.Context, entry domain.CapitalEntry) error

	// DeleteCapitalEntry removes an entry. Implementations return apperrors.ErrLocked
	// for locked entries so the guard holds even when a caller skips the service check.
	DeleteCapitalEntry(ctx context.Context, entryID string) error
}

// CapitalRepositoryFacade combines all capital-related repository interfaces
type CapitalRepositoryFacade interface {
	CapitalReader
	CapitalWriter
}

// CapitalRepositoryWithTx extends CapitalRepositoryFacade with transaction capabilities
type CapitalRepositoryWithTx interface {
	CapitalRepositoryFacade
	TransactionManager
}
