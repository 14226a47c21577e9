package dto

import (
	"time"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a product.
type CreateProductRequest struct {
	Name      string          `json:"name" binding:"required"`
	Category  string          `json:"category" binding:"required"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock" binding:"min=0"`
	ImageURL  string          `json:"imageUrl" binding:"required,url"`
	ImageHint string          `json:"imageHint"`
}

// UpdateProductRequest defines the product fields that may be changed.
type UpdateProductRequest struct {
	Name      *string          `json:"name" binding:"omitempty,min=1"`
	Category  *string          `json:"category" binding:"omitempty,min=1"`
	Price     *decimal.Decimal `json:"price"`
	Stock     *int             `json:"stock" binding:"omitempty,min=0"`
	ImageURL  *string          `json:"imageUrl" binding:"omitempty,url"`
	ImageHint *string          `json:"imageHint"`
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	ImageURL  string          `json:"imageUrl"`
	ImageHint string          `json:"imageHint,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ListProductsResponse wraps the list of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID: p.ProductID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Stock:     p.Stock,
		ImageURL:  p.ImageURL,
		ImageHint: p.ImageHint,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func ToListProductsResponse(products []domain.Product) ListProductsResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return ListProductsResponse{Products: responses}
}
