package domain

import "github.com/shopspring/decimal"

// Product is a catalogue item.
type Product struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	ImageURL  string          `json:"imageUrl"`
	ImageHint string          `json:"imageHint,omitempty"`
	AuditFields
}
