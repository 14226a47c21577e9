package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
)

// IsValid reports whether s is one of the known order statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order is a single sale on the marketplace together with its cost breakdown.
// TotalExpenses and Profit are derived; they stay absent until the recalculator
// has processed the order at least once.
type Order struct {
	OrderID        string              `json:"id"`
	EtsyOrderID    string              `json:"etsyOrderId"`
	OrderDate      time.Time           `json:"orderDate"`
	Status         OrderStatus         `json:"status"`
	OrderPrice     decimal.Decimal     `json:"orderPrice"`
	OrderCost      decimal.Decimal     `json:"orderCost"`
	ShippingCost   decimal.Decimal     `json:"shippingCost"`
	AdditionalFees decimal.Decimal     `json:"additionalFees"`
	TotalExpenses  decimal.NullDecimal `json:"totalExpenses"`
	Profit         decimal.NullDecimal `json:"profit"`
	Notes          string              `json:"notes,omitempty"`
	TrackingNumber string              `json:"trackingNumber,omitempty"`
	CreatedByUID   string              `json:"createdByUid,omitempty"`
	CreatedByEmail string              `json:"createdByEmail,omitempty"`
	EditedAt       *time.Time          `json:"editedAt,omitempty"`
	EditedBy       string              `json:"editedBy,omitempty"`
	AuditFields
}

// Clone returns a copy of o that shares no pointers with it.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	if o.EditedAt != nil {
		t := *o.EditedAt
		c.EditedAt = &t
	}
	return &c
}

// OrderFieldPatch is a merge-write: only non-nil fields are written, every
// other stored field is left untouched.
type OrderFieldPatch struct {
	TotalExpenses *decimal.Decimal
	Profit        *decimal.Decimal
	EditedAt      *time.Time
}

// IsEmpty reports whether the patch would not change any derived field.
func (p OrderFieldPatch) IsEmpty() bool {
	return p.TotalExpenses == nil && p.Profit == nil
}

// Apply merges the patch into o.
func (p OrderFieldPatch) Apply(o *Order) {
	if p.TotalExpenses != nil {
		o.TotalExpenses = decimal.NewNullDecimal(*p.TotalExpenses)
	}
	if p.Profit != nil {
		o.Profit = decimal.NewNullDecimal(*p.Profit)
	}
	if p.EditedAt != nil {
		t := *p.EditedAt
		o.EditedAt = &t
	}
}

// OrderFilter narrows an order listing.
type OrderFilter struct {
	Status *OrderStatus
	From   *time.Time
	To     *time.Time
}

// OrderWriteKind names the store operation that produced an OrderWriteEvent.
type OrderWriteKind string

const (
	OrderCreated OrderWriteKind = "created"
	OrderUpdated OrderWriteKind = "updated"
	OrderDeleted OrderWriteKind = "deleted"
)

// OrderWriteEvent describes a committed write to a single order document.
// Before is nil on creation, After is nil on deletion.
type OrderWriteEvent struct {
	Kind    OrderWriteKind
	OrderID string
	Before  *Order
	After   *Order
}
