package services

import (
	"context"
	"io"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/SscSPs/etsy_atlas/internal/dto"
)

// OrderReaderSvc defines read operations for orders
type OrderReaderSvc interface {
	// GetOrderByID retrieves a single order.
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves a page of orders, newest first.
	ListOrders(ctx context.Context, params dto.ListOrdersParams) ([]domain.Order, *string, error)

	// Overview aggregates revenue and profit across non-cancelled orders.
	Overview(ctx context.Context) (*domain.OrderOverview, error)

	// ExportOrdersXLSX writes every order as a spreadsheet to w.
	ExportOrdersXLSX(ctx context.Context, w io.Writer) error
}

// OrderWriterSvc defines write operations for orders
type OrderWriterSvc interface {
	// CreateOrder records an order entered from the dashboard.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creator domain.Session) (*domain.Order, error)

	// ImportOrder records an order received from the import webhook.
	ImportOrder(ctx context.Context, req dto.ImportOrderRequest) (*domain.Order, error)

	// UpdateOrder applies a partial update.
	UpdateOrder(ctx context.Context, orderID string, req dto.UpdateOrderRequest, editorUserID string) (*domain.Order, error)

	// DeleteOrder removes an order.
	DeleteOrder(ctx context.Context, orderID string) error
}

// OrderSvcFacade combines all order-related service interfaces
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
}

// OrderRecalculatorSvc keeps the derived order fields consistent with their inputs.
type OrderRecalculatorSvc interface {
	// ComputeDerivedFieldPatch returns the patch that brings the stored derived
	// fields of order in line with its inputs, and whether a write is needed.
	ComputeDerivedFieldPatch(order *domain.Order) (domain.OrderFieldPatch, bool)

	// OnOrderWritten reacts to a committed order write.
	OnOrderWritten(ctx context.Context, event domain.OrderWriteEvent)
}
