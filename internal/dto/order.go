package dto

import (
	"time"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest defines the data needed to record an order by hand.
type CreateOrderRequest struct {
	EtsyOrderID    string          `json:"etsyOrderId" binding:"required"`
	OrderDate      *time.Time      `json:"orderDate"`
	Status         string          `json:"status" binding:"omitempty,order_status"`
	OrderPrice     decimal.Decimal `json:"orderPrice"`
	OrderCost      decimal.Decimal `json:"orderCost"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	AdditionalFees decimal.Decimal `json:"additionalFees"`
	Notes          string          `json:"notes"`
	TrackingNumber string          `json:"trackingNumber"`
}

// UpdateOrderRequest defines the order fields that may be changed.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateOrderRequest struct {
	EtsyOrderID    *string          `json:"etsyOrderId" binding:"omitempty,min=1"`
	OrderDate      *time.Time       `json:"orderDate"`
	Status         *string          `json:"status" binding:"omitempty,order_status"`
	OrderPrice     *decimal.Decimal `json:"orderPrice"`
	OrderCost      *decimal.Decimal `json:"orderCost"`
	ShippingCost   *decimal.Decimal `json:"shippingCost"`
	AdditionalFees *decimal.Decimal `json:"additionalFees"`
	Notes          *string          `json:"notes"`
	TrackingNumber *string          `json:"trackingNumber"`
}

// ImportOrderRequest is the normalised payload of the import webhook.
// Numeric fields are parsed leniently before reaching this struct.
type ImportOrderRequest struct {
	EtsyOrderID    string
	OrderDate      *time.Time
	Status         string
	OrderPrice     decimal.Decimal
	OrderCost      decimal.Decimal
	ShippingCost   decimal.Decimal
	AdditionalFees decimal.Decimal
	Notes          string
	TrackingNumber string
	CreatedByUID   string
	CreatedByEmail string
}

// ImportOrderResponse is returned by the import webhook on success.
type ImportOrderResponse struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

// ListOrdersParams defines query parameters for listing orders.
type ListOrdersParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
	Status    string  `form:"status" binding:"omitempty,order_status"`
}

// OrderResponse defines the data returned for an order.
type OrderResponse struct {
	OrderID        string              `json:"id"`
	EtsyOrderID    string              `json:"etsyOrderId"`
	OrderDate      time.Time           `json:"orderDate"`
	Status         string              `json:"status"`
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
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
	EditedAt       *time.Time          `json:"editedAt,omitempty"`
	EditedBy       string              `json:"editedBy,omitempty"`
}

// ListOrdersResponse wraps a page of orders.
type ListOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO.
func ToOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:        o.OrderID,
		EtsyOrderID:    o.EtsyOrderID,
		OrderDate:      o.OrderDate,
		Status:         string(o.Status),
		OrderPrice:     o.OrderPrice,
		OrderCost:      o.OrderCost,
		ShippingCost:   o.ShippingCost,
		AdditionalFees: o.AdditionalFees,
		TotalExpenses:  o.TotalExpenses,
		Profit:         o.Profit,
		Notes:          o.Notes,
		TrackingNumber: o.TrackingNumber,
		CreatedByUID:   o.CreatedByUID,
		CreatedByEmail: o.CreatedByEmail,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		EditedAt:       o.EditedAt,
		EditedBy:       o.EditedBy,
	}
}

// ToListOrdersResponse converts a page of orders to its DTO.
func ToListOrdersResponse(orders []domain.Order, nextToken *string) ListOrdersResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return ListOrdersResponse{Orders: responses, NextToken: nextToken}
}
