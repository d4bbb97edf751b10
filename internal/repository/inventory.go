package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/papertrail/storefront/internal/domain"
)

const inventoryColumns = `id, product_id, transaction_type, quantity_change,
	stock_before, stock_after, order_id, actor_id, note, created_at`

func scanInventoryTransaction(row pgx.Row) (domain.InventoryTransaction, error) {
	var t domain.InventoryTransaction
	err := row.Scan(
		&t.ID, &t.ProductID, &t.Type, &t.QuantityChange,
		&t.StockBefore, &t.StockAfter, &t.OrderID, &t.ActorID, &t.Note, &t.CreatedAt,
	)
	return t, err
}

// CreateInventoryTransactionParams holds one append-only ledger row.
// The table CHECK enforces stock_after = stock_before + quantity_change.
type CreateInventoryTransactionParams struct {
	ProductID      int64
	Type           domain.TransactionType
	QuantityChange int
	StockBefore    int
	StockAfter     int
	OrderID        *int64
	ActorID        *int64
	Note           string
}

func (q *Queries) CreateInventoryTransaction(ctx context.Context, arg CreateInventoryTransactionParams) (domain.InventoryTransaction, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO inventory_transactions (product_id, transaction_type, quantity_change,
			stock_before, stock_after, order_id, actor_id, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+inventoryColumns,
		arg.ProductID, arg.Type, arg.QuantityChange,
		arg.StockBefore, arg.StockAfter, arg.OrderID, arg.ActorID, arg.Note,
	)
	return scanInventoryTransaction(row)
}

// ListInventoryTransactionsParams filters the ledger listing. A nil
// ProductID returns rows for all products.
type ListInventoryTransactionsParams struct {
	ProductID *int64
	Limit     int
}

func (q *Queries) ListInventoryTransactions(ctx context.Context, arg ListInventoryTransactionsParams) ([]domain.InventoryTransaction, error) {
	limit := arg.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := q.db.Query(ctx, `
		SELECT `+inventoryColumns+` FROM inventory_transactions
		WHERE ($1::BIGINT IS NULL OR product_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, arg.ProductID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []domain.InventoryTransaction
	for rows.Next() {
		t, err := scanInventoryTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// SumMovementsByType aggregates ledger rows per transaction type over a
// window.
func (q *Queries) SumMovementsByType(ctx context.Context, from, to time.Time) ([]domain.MovementSummary, error) {
	rows, err := q.db.Query(ctx, `
		SELECT transaction_type, COUNT(*), COALESCE(SUM(quantity_change), 0)
		FROM inventory_transactions
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY transaction_type
		ORDER BY transaction_type`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.MovementSummary
	for rows.Next() {
		var s domain.MovementSummary
		if err := rows.Scan(&s.Type, &s.Transactions, &s.TotalQuantity); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// TopMovedProducts lists products by units sold (ledger sale rows) over a
// window, most-moved first.
func (q *Queries) TopMovedProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductMovement, error) {
	rows, err := q.db.Query(ctx, `
		SELECT p.id, p.name, COALESCE(SUM(-t.quantity_change), 0) AS units_sold
		FROM inventory_transactions t
		JOIN products p ON p.id = t.product_id
		WHERE t.transaction_type = 'sale' AND t.created_at >= $1 AND t.created_at < $2
		GROUP BY p.id, p.name
		ORDER BY units_sold DESC
		LIMIT $3`, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []domain.ProductMovement
	for rows.Next() {
		var m domain.ProductMovement
		if err := rows.Scan(&m.ProductID, &m.ProductName, &m.UnitsSold); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

// ListLowStockProducts returns active products at or below the threshold,
// lowest stock first.
func (q *Queries) ListLowStockProducts(ctx context.Context, threshold int) ([]domain.Product, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE is_active = TRUE AND stock_quantity <= $1
		ORDER BY stock_quantity ASC, name ASC`, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}
