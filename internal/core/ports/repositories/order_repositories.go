package repositories

import (
	"context"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
)

// OrderReader defines read operations for order data
type OrderReader interface {
	// FindOrderByID retrieves a specific order by its ID.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves orders newest first using token-based pagination.
	// It returns the orders, a token for the next page, and an error.
	ListOrders(ctx context.Context, filter domain.OrderFilter, limit int, nextToken *string) ([]domain.Order, *string, error)

	// ListAllOrders retrieves every order matching the filter, newest first.
	ListAllOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)

	// CountOrders returns the number of stored orders.
	CountOrders(ctx context.Context) (int, error)
}

// OrderWriter defines write operations for order data
type OrderWriter interface {
	// SaveOrder persists a new order.
	SaveOrder(ctx context.Context, order domain.Order) error

	// UpdateOrder replaces the mutable fields of an existing order.
	UpdateOrder(ctx context.Context, order domain.Order) error

	// MergeOrderFields writes only the fields set on the patch.
	MergeOrderFields(ctx context.Context, orderID string, patch domain.OrderFieldPatch) error

	// DeleteOrder removes an order.
	DeleteOrder(ctx context.Context, orderID string) error

	// SaveOrdersBatch persists several new orders at once.
	SaveOrdersBatch(ctx context.Context, orders []domain.Order) error
}

// OrderRepositoryFacade combines all order-related repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}

// OrderRepositoryWithTx extends OrderRepositoryFacade with transaction capabilities
type OrderRepositoryWithTx interface {
	OrderRepositoryFacade
	TransactionManager
}

// OrderWriteObserver is notified after every committed order write.
type OrderWriteObserver interface {
	OnOrderWritten(ctx context.Context, event domain.OrderWriteEvent)
}

// OrderWriteObserverFunc adapts a function to OrderWriteObserver.
type OrderWriteObserverFunc func(ctx context.Context, event domain.OrderWriteEvent)

func (f OrderWriteObserverFunc) OnOrderWritten(ctx context.Context, event domain.OrderWriteEvent) {
	f(ctx, event)
}
