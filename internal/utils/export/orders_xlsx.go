package export

import (
	"fmt"
	"io"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/SscSPs/etsy_atlas/internal/utils/accounting"
	"github.com/xuri/excelize/v2"
)

// OrdersSheetName is the worksheet holding the exported orders.
const OrdersSheetName = "Orders"

// OrderColumns are the header cells of the orders sheet, in column order.
var OrderColumns = []string{
	"Etsy Order ID", "Order Date", "Status", "Order Price", "Order Cost",
	"Shipping Cost", "Additional Fees", "Total Expenses", "Profit",
	"Tracking Number", "Notes",
}

var columnWidths = map[string]float64{
	"A": 18, "B": 12, "C": 12, "D": 12, "E": 12, "F": 14,
	"G": 15, "H": 15, "I": 12, "J": 20, "K": 40,
}

// WriteOrdersXLSX renders orders into a single-sheet workbook and writes it to w.
// Derived fields that have not been stored yet are computed on the fly.
func WriteOrdersXLSX(w io.Writer, orders []domain.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(OrdersSheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for i, h := range OrderColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(OrdersSheetName, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for idx, o := range orders {
		row := idx + 2
		totals := accounting.CalculateOrderTotals(o)
		expenses, profit := totals.TotalExpenses, totals.Profit
		if o.TotalExpenses.Valid {
			expenses = o.TotalExpenses.Decimal
		}
		if o.Profit.Valid {
			profit = o.Profit.Decimal
		}

		values := []any{
			o.EtsyOrderID,
			o.OrderDate.Format("2006-01-02"),
			string(o.Status),
			o.OrderPrice.InexactFloat64(),
			o.OrderCost.InexactFloat64(),
			o.ShippingCost.InexactFloat64(),
			o.AdditionalFees.InexactFloat64(),
			expenses.InexactFloat64(),
			profit.InexactFloat64(),
			o.TrackingNumber,
			o.Notes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(OrdersSheetName, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	for col, width := range columnWidths {
		if err := f.SetColWidth(OrdersSheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	return f.Write(w)
}
