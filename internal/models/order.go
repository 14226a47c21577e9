package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the row shape of the orders table.
type Order struct {
	OrderID        string           `db:"order_id"`
	EtsyOrderID    string           `db:"etsy_order_id"`
	OrderDate      time.Time        `db:"order_date"`
	Status         string           `db:"status"`
	OrderPrice     decimal.Decimal  `db:"order_price"`
	OrderCost      decimal.Decimal  `db:"order_cost"`
	ShippingCost   decimal.Decimal  `db:"shipping_cost"`
	AdditionalFees decimal.Decimal  `db:"additional_fees"`
	TotalExpenses  *decimal.Decimal `db:"total_expenses"` // Null until first recompute
	Profit         *decimal.Decimal `db:"profit"`         // Null until first recompute
	Notes          string           `db:"notes"`
	TrackingNumber string           `db:"tracking_number"`
	CreatedByUID   string           `db:"created_by_uid"`
	CreatedByEmail string           `db:"created_by_email"`
	EditedAt       *time.Time       `db:"edited_at"`
	EditedBy       string           `db:"edited_by"`
	AuditFields
}
