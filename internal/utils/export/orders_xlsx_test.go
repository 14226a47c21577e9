package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteOrdersXLSX(t *testing.T) {
	orders := []domain.Order{
		{
			OrderID:        "o1",
			EtsyOrderID:    "ORD78901",
			OrderDate:      time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
			Status:         domain.OrderDelivered,
			OrderPrice:     decimal.NewFromInt(150),
			OrderCost:      decimal.NewFromInt(70),
			ShippingCost:   decimal.NewFromInt(15),
			AdditionalFees: decimal.NewFromInt(5),
			TotalExpenses:  decimal.NewNullDecimal(decimal.NewFromInt(90)),
			Profit:         decimal.NewNullDecimal(decimal.NewFromInt(60)),
		},
		{
			// Derived fields not yet stored
			OrderID:     "o2",
			EtsyOrderID: "ORD78902",
			OrderDate:   time.Date(2024, 7, 16, 0, 0, 0, 0, time.UTC),
			Status:      domain.OrderPending,
			OrderPrice:  decimal.NewFromInt(40),
			OrderCost:   decimal.NewFromInt(10),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOrdersXLSX(&buf, orders))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(OrdersSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, OrderColumns, rows[0])
	assert.Equal(t, "ORD78901", rows[1][0])
	assert.Equal(t, "2024-07-15", rows[1][1])
	assert.Equal(t, "90", rows[1][7])
	assert.Equal(t, "60", rows[1][8])
	assert.Equal(t, "10", rows[2][7])
	assert.Equal(t, "30", rows[2][8])
}

func TestWriteOrdersXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(OrdersSheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, []string{OrdersSheetName}, f.GetSheetList())
}
