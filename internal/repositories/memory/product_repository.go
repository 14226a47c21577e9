package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
)

type ProductRepository struct {
	store *Store
}

var _ portsrepo.ProductRepositoryFacade = (*ProductRepository)(nil)

func (r *ProductRepository) FindProductByID(_ context.Context, productID string) (*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.products[productID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r *ProductRepository) ListProducts(_ context.Context, limit int, offset int) ([]domain.Product, error) {
	r.store.mu.RLock()
	all := make([]domain.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		all = append(all, p)
	}
	r.store.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ProductID < all[j].ProductID
	})
	start, end := clampPage(limit, offset, len(all))
	return all[start:end], nil
}

func (r *ProductRepository) SaveProduct(_ context.Context, product domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.products[product.ProductID]; exists {
		return apperrors.ErrDuplicate
	}
	r.store.products[product.ProductID] = product
	return nil
}

func (r *ProductRepository) UpdateProduct(_ context.Context, product domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[product.ProductID]; !ok {
		return apperrors.ErrNotFound
	}
	r.store.products[product.ProductID] = product
	return nil
}

func (r *ProductRepository) DeleteProduct(_ context.Context, productID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[productID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.store.products, productID)
	return nil
}
