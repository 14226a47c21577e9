package accounting

import (
	"testing"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateOrderTotals(t *testing.T) {
	tests := []struct {
		name         string
		order        domain.Order
		wantExpenses string
		wantProfit   string
	}{
		{
			name: "all inputs present",
			order: domain.Order{
				OrderPrice: d("150"), OrderCost: d("70"), ShippingCost: d("15"), AdditionalFees: d("5"),
			},
			wantExpenses: "90",
			wantProfit:   "60",
		},
		{
			name:         "absent costs count as zero",
			order:        domain.Order{OrderPrice: d("40")},
			wantExpenses: "0",
			wantProfit:   "40",
		},
		{
			name: "loss making order",
			order: domain.Order{
				OrderPrice: d("10"), OrderCost: d("12.5"),
			},
			wantExpenses: "12.5",
			wantProfit:   "-2.5",
		},
		{
			name: "fractional amounts stay exact",
			order: domain.Order{
				OrderPrice: d("200.5"), OrderCost: d("90"), ShippingCost: d("20"), AdditionalFees: d("7.5"),
			},
			wantExpenses: "117.5",
			wantProfit:   "83",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateOrderTotals(tt.order)
			assert.True(t, d(tt.wantExpenses).Equal(got.TotalExpenses), "expenses: got %s", got.TotalExpenses)
			assert.True(t, d(tt.wantProfit).Equal(got.Profit), "profit: got %s", got.Profit)
		})
	}
}

func TestDerivedFieldDiffers(t *testing.T) {
	assert.True(t, DerivedFieldDiffers(decimal.NullDecimal{}, decimal.Zero), "absent value always differs")
	assert.False(t, DerivedFieldDiffers(decimal.NewNullDecimal(d("90.00")), d("90")), "equal regardless of scale")
	assert.True(t, DerivedFieldDiffers(decimal.NewNullDecimal(d("90")), d("91")))
}

func TestCalculateOverview(t *testing.T) {
	orders := []domain.Order{
		{Status: domain.OrderDelivered, OrderPrice: d("150"), OrderCost: d("70"), ShippingCost: d("15"), AdditionalFees: d("5")},
		{Status: domain.OrderPending, OrderPrice: d("50"), OrderCost: d("30")},
		{Status: domain.OrderCancelled, OrderPrice: d("999"), OrderCost: d("1")},
	}

	got := CalculateOverview(orders)

	assert.True(t, d("200").Equal(got.TotalRevenue))
	assert.True(t, d("120").Equal(got.TotalExpenses))
	assert.True(t, d("80").Equal(got.NetProfit))
	assert.True(t, d("40").Equal(got.ProfitMargin))
	assert.Equal(t, 2, got.OrderCount)
	assert.Equal(t, 1, got.CountPerStatus[domain.OrderCancelled])
}

func TestCalculateOverview_Empty(t *testing.T) {
	got := CalculateOverview(nil)
	assert.True(t, got.ProfitMargin.IsZero())
	assert.Equal(t, 0, got.OrderCount)
}

func TestCalculateCapitalSummary(t *testing.T) {
	got := CalculateCapitalSummary(map[domain.CapitalType]decimal.Decimal{
		domain.CapitalDeposit:    d("6250.75"),
		domain.CapitalWithdrawal: d("800"),
	}, 3)
	assert.True(t, d("5450.75").Equal(got.NetBalance))
	assert.Equal(t, 3, got.EntryCount)

	empty := CalculateCapitalSummary(nil, 0)
	assert.True(t, empty.NetBalance.IsZero())
}
