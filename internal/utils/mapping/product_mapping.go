package mapping

import (
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/SscSPs/etsy_atlas/internal/models"
)

func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:   d.ProductID,
		Name:        d.Name,
		Category:    d.Category,
		Price:       d.Price,
		Stock:       d.Stock,
		ImageURL:    d.ImageURL,
		ImageHint:   d.ImageHint,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:   m.ProductID,
		Name:        m.Name,
		Category:    m.Category,
		Price:       m.Price,
		Stock:       m.Stock,
		ImageURL:    m.ImageURL,
		ImageHint:   m.ImageHint,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}
