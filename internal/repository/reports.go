package repository

import (
	"context"
	"time"

	"github.com/papertrail/storefront/internal/domain"
)

// CountOrdersByStatus buckets orders placed in the window by status.
func (q *Queries) CountOrdersByStatus(ctx context.Context, from, to time.Time) ([]domain.StatusCount, error) {
	rows, err := q.db.Query(ctx, `
		SELECT status, COUNT(*)
		FROM orders
		WHERE placed_at >= $1 AND placed_at < $2
		GROUP BY status
		ORDER BY status`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.StatusCount
	for rows.Next() {
		var c domain.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// SalesByMonth aggregates completed-order revenue per calendar month.
func (q *Queries) SalesByMonth(ctx context.Context, from, to time.Time) ([]domain.MonthlySales, error) {
	rows, err := q.db.Query(ctx, `
		SELECT DATE_TRUNC('month', placed_at) AS month, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE status = 'completed' AND placed_at >= $1 AND placed_at < $2
		GROUP BY month
		ORDER BY month`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var months []domain.MonthlySales
	for rows.Next() {
		var m domain.MonthlySales
		if err := rows.Scan(&m.Month, &m.Orders, &m.Revenue); err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

// TopSellingProducts ranks products by order-item revenue over the window.
// Cancelled orders are excluded.
func (q *Queries) TopSellingProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductSales, error) {
	rows, err := q.db.Query(ctx, `
		SELECT oi.product_id, p.name,
			COALESCE(SUM(oi.quantity), 0) AS units_sold,
			COALESCE(SUM(oi.unit_price * oi.quantity), 0) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.status <> 'cancelled' AND o.placed_at >= $1 AND o.placed_at < $2
		GROUP BY oi.product_id, p.name
		ORDER BY revenue DESC
		LIMIT $3`, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []domain.ProductSales
	for rows.Next() {
		var s domain.ProductSales
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.UnitsSold, &s.Revenue); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// DashboardCounts gathers the headline numbers for the admin dashboard in
// a single round trip.
func (q *Queries) DashboardCounts(ctx context.Context, lowStockThreshold int) (domain.DashboardCounts, error) {
	var c domain.DashboardCounts
	row := q.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products WHERE is_active = TRUE),
			(SELECT COUNT(*) FROM carts WHERE is_active = TRUE),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM orders WHERE status = 'pending'),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM products WHERE is_active = TRUE AND stock_quantity <= $1),
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = 'completed')`,
		lowStockThreshold)
	err := row.Scan(&c.Products, &c.ActiveCarts, &c.Orders, &c.PendingOrders, &c.Users, &c.LowStock, &c.Revenue)
	return c, err
}
