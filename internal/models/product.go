package models

import "github.com/shopspring/decimal"

// Product is the row shape of the products table.
type Product struct {
	ProductID string          `db:"product_id"`
	Name      string          `db:"name"`
	Category  string          `db:"category"`
	Price     decimal.Decimal `db:"price"`
	Stock     int             `db:"stock"`
	ImageURL  string          `db:"image_url"`
	ImageHint string          `db:"image_hint"`
	AuditFields
}
