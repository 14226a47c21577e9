package mapping

import (
	"github.com/SscSPs/etsy_atlas/internal/core/domain"
	"github.com/SscSPs/etsy_atlas/internal/models"
	"github.com/shopspring/decimal"
)

func nullDecimalToPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func ptrToNullDecimal(p *decimal.Decimal) decimal.NullDecimal {
	if p == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*p)
}

// ToModelOrder converts a domain Order to a model Order
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:        d.OrderID,
		EtsyOrderID:    d.EtsyOrderID,
		OrderDate:      d.OrderDate,
		Status:         string(d.Status),
		OrderPrice:     d.OrderPrice,
		OrderCost:      d.OrderCost,
		ShippingCost:   d.ShippingCost,
		AdditionalFees: d.AdditionalFees,
		TotalExpenses:  nullDecimalToPtr(d.TotalExpenses),
		Profit:         nullDecimalToPtr(d.Profit),
		Notes:          d.Notes,
		TrackingNumber: d.TrackingNumber,
		CreatedByUID:   d.CreatedByUID,
		CreatedByEmail: d.CreatedByEmail,
		EditedAt:       d.EditedAt,
		EditedBy:       d.EditedBy,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrder converts a model Order to a domain Order
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:        m.OrderID,
		EtsyOrderID:    m.EtsyOrderID,
		OrderDate:      m.OrderDate,
		Status:         domain.OrderStatus(m.Status),
		OrderPrice:     m.OrderPrice,
		OrderCost:      m.OrderCost,
		ShippingCost:   m.ShippingCost,
		AdditionalFees: m.AdditionalFees,
		TotalExpenses:  ptrToNullDecimal(m.TotalExpenses),
		Profit:         ptrToNullDecimal(m.Profit),
		Notes:          m.Notes,
		TrackingNumber: m.TrackingNumber,
		CreatedByUID:   m.CreatedByUID,
		CreatedByEmail: m.CreatedByEmail,
		EditedAt:       m.EditedAt,
		EditedBy:       m.EditedBy,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrderSlice converts a slice of model Orders to a slice of domain Orders
func ToDomainOrderSlice(ms []models.Order) []domain.Order {
	ds := make([]domain.Order, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrder(m)
	}
	return ds
}
