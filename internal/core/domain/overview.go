package domain

import "github.com/shopspring/decimal"

// OrderOverview summarises revenue and profit across non-cancelled orders.
type OrderOverview struct {
	TotalRevenue   decimal.Decimal     `json:"totalRevenue"`
	TotalExpenses  decimal.Decimal     `json:"totalExpenses"`
	NetProfit      decimal.Decimal     `json:"netProfit"`
	ProfitMargin   decimal.Decimal     `json:"profitMargin"`
	OrderCount     int                 `json:"orderCount"`
	CountPerStatus map[OrderStatus]int `json:"countPerStatus"`
}
