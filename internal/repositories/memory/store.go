// Package memory provides map-backed implementations of the repository ports.
// It backs the test suites and STORE_DRIVER=memory local runs.
package memory

import (
	"sync"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
)

// Store holds every entity behind a single lock so that batch writes are atomic.
type Store struct {
	mu       sync.RWMutex
	orders   map[string]domain.Order
	products map[string]domain.Product
	capital  map[string]domain.CapitalEntry
	users    map[string]domain.User
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		orders:   make(map[string]domain.Order),
		products: make(map[string]domain.Product),
		capital:  make(map[string]domain.CapitalEntry),
		users:    make(map[string]domain.User),
	}
}

// NewRepositoryProvider exposes a fresh store through the repository ports.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return NewStore().RepositoryProvider()
}

// RepositoryProvider exposes s through the repository ports.
func (s *Store) RepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrderRepo:   &OrderRepository{store: s},
		ProductRepo: &ProductRepository{store: s},
		CapitalRepo: &CapitalRepository{store: s},
		UserRepo:    &UserRepository{store: s},
		SeedRepo:    &SeedRepository{store: s},
	}
}

func clampPage(limit, offset, total int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return offset, end
}
