package model

import (
	"time"

	"github.com/google/uuid"
)

// DailyRevenue is one day's order revenue.
type DailyRevenue struct {
	Day     time.Time `json:"day"`
	Orders  int       `json:"orders"`
	Revenue float64   `json:"revenue"`
}

// ProductSales is an aggregate of quantities sold per product.
type ProductSales struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Revenue   float64   `json:"revenue"`
}

// OrderTotals is the headline aggregate over all orders.
type OrderTotals struct {
	TotalOrders     int     `json:"totalOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PendingPayments int     `json:"pendingPayments"`
}

// DashboardReport is the admin analytics summary.
type DashboardReport struct {
	TotalOrders      int                 `json:"totalOrders"`
	TotalRevenue     float64             `json:"totalRevenue"`
	PendingPayments  int                 `json:"pendingPayments"`
	NewsletterActive int                 `json:"newsletterActive"`
	OrdersByStatus   map[OrderStatus]int `json:"ordersByStatus"`
	RevenueByDay     []DailyRevenue      `json:"revenueByDay"`
	TopProducts      []ProductSales      `json:"topProducts"`
}
