package repositories

import (
	"context"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
)

// SeedRepository writes a set of users and orders as a single atomic batch.
type SeedRepository interface {
	SeedBatch(ctx context.Context, users []domain.User, orders []domain.Order) error
}
