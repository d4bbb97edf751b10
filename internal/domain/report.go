package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusCount is an order-count bucket for one order status.
type StatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int64       `json:"count"`
}

// MonthlySales aggregates completed revenue for one calendar month.
type MonthlySales struct {
	Month   time.Time       `json:"month"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ProductSales ranks a product by revenue over a reporting window.
type ProductSales struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// DashboardCounts backs the admin landing page.
type DashboardCounts struct {
	Products      int64           `json:"products"`
	ActiveCarts   int64           `json:"active_carts"`
	Orders        int64           `json:"orders"`
	PendingOrders int64           `json:"pending_orders"`
	Users         int64           `json:"users"`
	LowStock      int64           `json:"low_stock"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// SalesReport is the admin sales summary for a window.
type SalesReport struct {
	From        time.Time      `json:"from"`
	To          time.Time      `json:"to"`
	ByStatus    []StatusCount  `json:"by_status"`
	ByMonth     []MonthlySales `json:"by_month"`
	TopProducts []ProductSales `json:"top_products"`
}

// InventoryReport is the admin stock-movement summary for a window.
type InventoryReport struct {
	From      time.Time         `json:"from"`
	To        time.Time         `json:"to"`
	Movements []MovementSummary `json:"movements"`
	TopMoved  []ProductMovement `json:"top_moved"`
	LowStock  []Product         `json:"low_stock"`
}
