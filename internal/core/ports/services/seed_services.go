package services

import (
	"context"

	"github.com/SscSPs/etsy_atlas/internal/dto"
)

// SeedSvc loads demo data into an empty store.
type SeedSvc interface {
	// Seed writes the configured users and orders. It refuses when the store
	// already holds users or orders.
	Seed(ctx context.Context) (*dto.SeedResponse, error)
}
