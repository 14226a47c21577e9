package services

import (
	"context"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/SscSPs/etsy_atlas/internal/dto"
)

// CapitalReaderSvc defines read operations for capital entries
type CapitalReaderSvc interface {
	GetCapitalEntry(ctx context.Context, entryID string) (*domain.CapitalEntry, error)
	ListCapitalEntries(ctx context.Context, limit, offset int) ([]domain.CapitalEntry, error)
	Summary(ctx context.Context) (*domain.CapitalSummary, error)
}

// CapitalWriterSvc defines write operations for capital entries
type CapitalWriterSvc interface {
	// CreateCapitalEntry records a new entry. New entries are locked.
	CreateCapitalEntry(ctx context.Context, req dto.CreateCapitalEntryRequest, submittedBy string) (*domain.CapitalEntry, error)

	// DeleteCapitalEntry removes an unlocked entry.
	DeleteCapitalEntry(ctx context.Context, entryID string) error
}

// CapitalSvcFacade combines all capital-related service interfaces
type CapitalSvcFacade interface {
	CapitalReaderSvc
	CapitalWriterSvc
}
