package pgsql

import (
	"context"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSeedRepository struct {
	BaseRepository
}

func newPgxSeedRepository(pool *pgxpool.Pool) portsrepo.SeedRepository {
	return &PgxSeedRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SeedRepository = (*PgxSeedRepository)(nil)

// SeedBatch writes users and orders in one transaction.
func (r *PgxSeedRepository) SeedBatch(ctx context.Context, users []domain.User, orders []domain.Order) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if len(users) > 0 {
		if err := insertUsers(ctx, tx, users); err != nil {
			return err
		}
	}
	if len(orders) > 0 {
		if err := insertOrders(ctx, tx, orders); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}
