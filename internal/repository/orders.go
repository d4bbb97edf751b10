package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/papertrail/storefront/internal/domain"
)

const orderColumns = `id, order_number, user_id, full_name, email, address,
	payment_method, status, subtotal, shipping_fee, total_amount, placed_at`

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.FullName, &o.Email, &o.Address,
		&o.PaymentMethod, &o.Status, &o.Subtotal, &o.ShippingFee, &o.TotalAmount, &o.PlacedAt,
	)
	return o, err
}

// CreateOrderParams holds the column values for a new order.
type CreateOrderParams struct {
	OrderNumber   string
	UserID        *int64
	FullName      string
	Email         string
	Address       string
	PaymentMethod string
	Status        domain.OrderStatus
	Subtotal      decimal.Decimal
	ShippingFee   decimal.Decimal
	TotalAmount   decimal.Decimal
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (domain.Order, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO orders (order_number, user_id, full_name, email, address,
			payment_method, status, subtotal, shipping_fee, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+orderColumns,
		arg.OrderNumber, arg.UserID, arg.FullName, arg.Email, arg.Address,
		arg.PaymentMethod, arg.Status, arg.Subtotal, arg.ShippingFee, arg.TotalAmount,
	)
	return scanOrder(row)
}

// CreateOrderItemParams holds the column values for one order line.
type CreateOrderItemParams struct {
	OrderID   int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (domain.OrderItem, error) {
	var i domain.OrderItem
	err := q.db.QueryRow(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, order_id, product_id, quantity, unit_price`,
		arg.OrderID, arg.ProductID, arg.Quantity, arg.UnitPrice,
	).Scan(&i.ID, &i.OrderID, &i.ProductID, &i.Quantity, &i.UnitPrice)
	return i, err
}

func (q *Queries) GetOrderByID(ctx context.Context, id int64) (domain.Order, error) {
	row := q.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		return domain.Order{}, noRows(err)
	}
	return o, nil
}

func (q *Queries) GetOrderByNumber(ctx context.Context, orderNumber string) (domain.Order, error) {
	row := q.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber)
	o, err := scanOrder(row)
	if err != nil {
		return domain.Order{}, noRows(err)
	}
	return o, nil
}

func (q *Queries) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE user_id = $1
		ORDER BY placed_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (q *Queries) ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var i domain.OrderItem
		if err := rows.Scan(&i.ID, &i.OrderID, &i.ProductID, &i.Quantity, &i.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (q *Queries) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	tag, err := q.db.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
