package pgsql

import (
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrderRepo:   newPgxOrderRepository(dbPool),
		ProductRepo: newPgxProductRepository(dbPool),
		CapitalRepo: newPgxCapitalRepository(dbPool),
		UserRepo:    newPgxUserRepository(dbPool),
		SeedRepo:    newPgxSeedRepository(dbPool),
	}
}
