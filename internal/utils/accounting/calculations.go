package accounting

import (
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// OrderTotals holds the derived money fields of an order.
type OrderTotals struct {
	TotalExpenses decimal.Decimal
	Profit        decimal.Decimal
}

// CalculateOrderTotals derives total expenses and profit from the order's inputs.
//
//	totalExpenses = orderCost + shippingCost + additionalFees
//	profit        = orderPrice - totalExpenses
//
// Zero-valued decimals stand in for absent inputs.
func CalculateOrderTotals(o domain.Order) OrderTotals {
	expenses := o.OrderCost.Add(o.ShippingCost).Add(o.AdditionalFees)
	return OrderTotals{
		TotalExpenses: expenses,
		Profit:        o.OrderPrice.Sub(expenses),
	}
}

// DerivedFieldDiffers reports whether a stored derived value differs from the
// computed one. An absent stored value always differs.
func DerivedFieldDiffers(stored decimal.NullDecimal, computed decimal.Decimal) bool {
	if !stored.Valid {
		return true
	}
	return !stored.Decimal.Equal(computed)
}

// CalculateOverview aggregates orders for the dashboard. Cancelled orders are
// counted per status but excluded from every money total.
func CalculateOverview(orders []domain.Order) domain.OrderOverview {
	overview := domain.OrderOverview{
		TotalRevenue:   decimal.Zero,
		TotalExpenses:  decimal.Zero,
		NetProfit:      decimal.Zero,
		ProfitMargin:   decimal.Zero,
		CountPerStatus: make(map[domain.OrderStatus]int),
	}

	for _, o := range orders {
		overview.CountPerStatus[o.Status]++
		if o.Status == domain.OrderCancelled {
			continue
		}
		totals := CalculateOrderTotals(o)
		overview.OrderCount++
		overview.TotalRevenue = overview.TotalRevenue.Add(o.OrderPrice)
		overview.TotalExpenses = overview.TotalExpenses.Add(totals.TotalExpenses)
		overview.NetProfit = overview.NetProfit.Add(totals.Profit)
	}

	if overview.TotalRevenue.IsPositive() {
		overview.ProfitMargin = overview.NetProfit.Div(overview.TotalRevenue).Mul(hundred).Round(2)
	}
	return overview
}

// CalculateCapitalSummary totals deposits and withdrawals.
func CalculateCapitalSummary(sums map[domain.CapitalType]decimal.Decimal, count int) domain.CapitalSummary {
	deposits := sums[domain.CapitalDeposit]
	withdrawals := sums[domain.CapitalWithdrawal]
	return domain.CapitalSummary{
		TotalDeposits:    deposits,
		TotalWithdrawals: withdrawals,
		NetBalance:       deposits.Sub(withdrawals),
		EntryCount:       count,
	}
}
