package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	portsrepo "github.com/SscSPs/etsy_atlas/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/etsy_atlas/internal/core/ports/services"
	"github.com/SscSPs/etsy_atlas/internal/utils/accounting"
)

// orderRecalculator keeps TotalExpenses and Profit in line with the order inputs.
//
// It runs after every committed create or update. The comparison is made
// against the post-write snapshot, so its own merge-write produces a second
// invocation that finds nothing to change.
type orderRecalculator struct {
	BaseService
	orderRepo portsrepo.OrderWriter
	now       func() time.Time
}

// NewOrderRecalculator creates a recalculator writing through orderRepo.
func NewOrderRecalculator(orderRepo portsrepo.OrderWriter) portssvc.OrderRecalculatorSvc {
	return &orderRecalculator{orderRepo: orderRepo, now: time.Now}
}

var (
	_ portssvc.OrderRecalculatorSvc = (*orderRecalculator)(nil)
	_ portsrepo.OrderWriteObserver  = (*orderRecalculator)(nil)
)

func (r *orderRecalculator) ComputeDerivedFieldPatch(order *domain.Order) (domain.OrderFieldPatch, bool) {
	if order == nil {
		return domain.OrderFieldPatch{}, false
	}

	totals := accounting.CalculateOrderTotals(*order)

	var patch domain.OrderFieldPatch
	if accounting.DerivedFieldDiffers(order.TotalExpenses, totals.TotalExpenses) {
		v := totals.TotalExpenses
		patch.TotalExpenses = &v
	}
	if accounting.DerivedFieldDiffers(order.Profit, totals.Profit) {
		v := totals.Profit
		patch.Profit = &v
	}
	if patch.IsEmpty() {
		return patch, false
	}

	editedAt := r.now().UTC()
	patch.EditedAt = &editedAt
	return patch, true
}

func (r *orderRecalculator) OnOrderWritten(ctx context.Context, event domain.OrderWriteEvent) {
	if event.Kind == domain.OrderDeleted || event.After == nil {
		return
	}

	logger := r.GetLogger(ctx).With(slog.String("order_id", event.OrderID), slog.String("trigger", string(event.Kind)))

	patch, needed := r.ComputeDerivedFieldPatch(event.After)
	if !needed {
		logger.Debug("No update needed for order derived fields")
		return
	}

	attrs := []any{}
	if patch.TotalExpenses != nil {
		attrs = append(attrs, slog.String("total_expenses", patch.TotalExpenses.StringFixed(2)))
	}
	if patch.Profit != nil {
		attrs = append(attrs, slog.String("profit", patch.Profit.StringFixed(2)))
	}
	logger.Info("Updating order derived fields", attrs...)

	if err := r.orderRepo.MergeOrderFields(ctx, event.OrderID, patch); err != nil {
		logger.Error("Failed to update order derived fields", slog.String("error", err.Error()))
		return
	}
	logger.Info("Order derived fields updated")
}
