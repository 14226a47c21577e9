package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/dto"
	"github.com/SscSPs/etsy_atlas/internal/utils"
	"github.com/SscSPs/etsy_atlas/internal/utils/accounting"
	"github.com/SscSPs/etsy_atlas/internal/utils/export"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type orderService struct {
	BaseService
	orderRepo portsrepo.OrderRepositoryFacade
	now       func() time.Time
}

// NewOrderService creates an order service. orderRepo should carry the write
// triggers so that derived fields are populated after each write.
func NewOrderService(orderRepo portsrepo.OrderRepositoryFacade) portssvc.OrderSvcFacade {
	return &orderService{orderRepo: orderRepo, now: time.Now}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

func validateOrderAmounts(o domain.Order) error {
	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"orderPrice", o.OrderPrice},
		{"orderCost", o.OrderCost},
		{"shippingCost", o.ShippingCost},
		{"additionalFees", o.AdditionalFees},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("%s must not be negative: %w", a.name, apperrors.ErrValidation)
		}
	}
	if !o.Status.IsValid() {
		return fmt.Errorf("unknown order status %q: %w", o.Status, apperrors.ErrValidation)
	}
	if strings.TrimSpace(o.EtsyOrderID) == "" {
		return fmt.Errorf("etsyOrderId is required: %w", apperrors.ErrValidation)
	}
	return nil
}

// newOrder builds an order with defaults for the omitted fields.
func (s *orderService) newOrder(etsyOrderID string, orderDate *time.Time, status string) domain.Order {
	now := s.now().UTC()
	o := domain.Order{
		OrderID:     uuid.NewString(),
		EtsyOrderID: strings.TrimSpace(etsyOrderID),
		OrderDate:   now,
		Status:      domain.OrderPending,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if orderDate != nil && !orderDate.IsZero() {
		o.OrderDate = orderDate.UTC()
	}
	if status != "" {
		o.Status = domain.OrderStatus(status)
	}
	return o
}

func (s *orderService) saveAndReload(ctx context.Context, order domain.Order) (*domain.Order, error) {
	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		s.LogError(ctx, err, "Failed to save order", slog.String("order_id", order.OrderID))
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	saved, err := s.orderRepo.FindOrderByID(ctx, order.OrderID)
	if err != nil {
		// The write succeeded; fall back to what was sent.
		s.LogError(ctx, err, "Failed to reload saved order", slog.String("order_id", order.OrderID))
		return &order, nil
	}
	return saved, nil
}

func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creator domain.Session) (*domain.Order, error) {
	order := s.newOrder(req.EtsyOrderID, req.OrderDate, req.Status)
	order.OrderPrice = req.OrderPrice
	order.OrderCost = req.OrderCost
	order.ShippingCost = req.ShippingCost
	order.AdditionalFees = req.AdditionalFees
	order.Notes = req.Notes
	order.TrackingNumber = req.TrackingNumber
	order.CreatedByUID = creator.UserID
	order.CreatedByEmail = creator.Email

	if err := validateOrderAmounts(order); err != nil {
		return nil, err
	}

	saved, err := s.saveAndReload(ctx, order)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Order created", slog.String("order_id", saved.OrderID), slog.String("etsy_order_id", saved.EtsyOrderID))
	return saved, nil
}

func (s *orderService) ImportOrder(ctx context.Context, req dto.ImportOrderRequest) (*domain.Order, error) {
	if strings.TrimSpace(req.EtsyOrderID) == "" {
		return nil, fmt.Errorf("etsyOrderId is required: %w", apperrors.ErrValidation)
	}

	if req.Status != "" && !domain.OrderStatus(req.Status).IsValid() {
		s.LogWarn(ctx, "Imported order has unknown status", slog.String("status", req.Status))
		return nil, fmt.Errorf("unknown order status %q: %w", req.Status, apperrors.ErrValidation)
	}

	order := s.newOrder(req.EtsyOrderID, req.OrderDate, req.Status)
	order.OrderPrice = req.OrderPrice
	order.OrderCost = req.OrderCost
	order.ShippingCost = req.ShippingCost
	order.AdditionalFees = req.AdditionalFees
	order.Notes = req.Notes
	order.TrackingNumber = req.TrackingNumber
	order.CreatedByUID = req.CreatedByUID
	order.CreatedByEmail = req.CreatedByEmail

	if err := validateOrderAmounts(order); err != nil {
		return nil, err
	}

	saved, err := s.saveAndReload(ctx, order)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Order imported", slog.String("order_id", saved.OrderID), slog.String("etsy_order_id", saved.EtsyOrderID))
	return saved, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get order", slog.String("order_id", orderID))
		}
		return nil, fmt.Errorf("failed to get order by ID in service: %w", err)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, params dto.ListOrdersParams) ([]domain.Order, *string, error) {
	var filter domain.OrderFilter
	if params.Status != "" {
		st := domain.OrderStatus(params.Status)
		if !st.IsValid() {
			return nil, nil, fmt.Errorf("unknown order status %q: %w", params.Status, apperrors.ErrValidation)
		}
		filter.Status = &st
	}

	orders, next, err := s.orderRepo.ListOrders(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list orders")
		}
		return nil, nil, fmt.Errorf("failed to list orders in service: %w", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, next, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, orderID string, req dto.UpdateOrderRequest, editorUserID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load order for update", slog.String("order_id", orderID))
		}
		return nil, fmt.Errorf("failed to get order for update: %w", err)
	}

	updated := *order.Clone()
	if req.EtsyOrderID != nil {
		updated.EtsyOrderID = strings.TrimSpace(*req.EtsyOrderID)
	}
	if req.OrderDate != nil {
		updated.OrderDate = req.OrderDate.UTC()
	}
	if req.Status != nil {
		updated.Status = domain.OrderStatus(*req.Status)
	}
	if req.OrderPrice != nil {
		updated.OrderPrice = *req.OrderPrice
	}
	if req.OrderCost != nil {
		updated.OrderCost = *req.OrderCost
	}
	if req.ShippingCost != nil {
		updated.ShippingCost = *req.ShippingCost
	}
	if req.AdditionalFees != nil {
		updated.AdditionalFees = *req.AdditionalFees
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if req.TrackingNumber != nil {
		updated.TrackingNumber = *req.TrackingNumber
	}

	if err := validateOrderAmounts(updated); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	updated.UpdatedAt = now
	updated.EditedAt = &now
	updated.EditedBy = editorUserID

	if err := s.orderRepo.UpdateOrder(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update order", slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	reloaded, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		s.LogError(ctx, err, "Failed to reload updated order", slog.String("order_id", orderID))
		return &updated, nil
	}
	s.LogInfo(ctx, "Order updated", slog.String("order_id", orderID), slog.String("edited_by", editorUserID))
	return reloaded, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, orderID string) error {
	if err := s.orderRepo.DeleteOrder(ctx, orderID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete order", slog.String("order_id", orderID))
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	s.LogInfo(ctx, "Order deleted", slog.String("order_id", orderID))
	return nil
}

func (s *orderService) Overview(ctx context.Context) (*domain.OrderOverview, error) {
	orders, err := s.orderRepo.ListAllOrders(ctx, domain.OrderFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load orders for overview")
		return nil, fmt.Errorf("failed to build order overview: %w", err)
	}
	overview := accounting.CalculateOverview(orders)
	s.LogInfo(ctx, "Order overview computed",
		slog.Int("order_count", overview.OrderCount),
		slog.String("revenue", utils.FormatMoney(overview.TotalRevenue)),
		slog.String("net_profit", utils.FormatMoney(overview.NetProfit)))
	return &overview, nil
}

func (s *orderService) ExportOrdersXLSX(ctx context.Context, w io.Writer) error {
	orders, err := s.orderRepo.ListAllOrders(ctx, domain.OrderFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load orders for export")
		return fmt.Errorf("failed to load orders for export: %w", err)
	}
	if err := export.WriteOrdersXLSX(w, orders); err != nil {
		s.LogError(ctx, err, "Failed to write orders spreadsheet", slog.Int("order_count", len(orders)))
		return fmt.Errorf("failed to export orders: %w", err)
	}
	s.LogInfo(ctx, "Orders exported", slog.Int("order_count", len(orders)))
	return nil
}
