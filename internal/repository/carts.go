package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/papertrail/storefront/internal/domain"
)

const cartColumns = `id, user_id, session_token, is_active, created_at, updated_at`

func scanCart(row pgx.Row) (domain.Cart, error) {
	var c domain.Cart
	err := row.Scan(&c.ID, &c.UserID, &c.SessionToken, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CreateCartParams names the cart owner. Exactly one of UserID and
// SessionToken must be set; the table CHECK enforces it as well.
type CreateCartParams struct {
	UserID       *int64
	SessionToken *string
}

func (q *Queries) CreateCart(ctx context.Context, arg CreateCartParams) (domain.Cart, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO carts (user_id, session_token, is_active)
		VALUES ($1, $2, TRUE)
		RETURNING `+cartColumns,
		arg.UserID, arg.SessionToken)
	return scanCart(row)
}

func (q *Queries) GetCartByID(ctx context.Context, id int64) (domain.Cart, error) {
	row := q.db.QueryRow(ctx, `SELECT `+cartColumns+` FROM carts WHERE id = $1`, id)
	c, err := scanCart(row)
	if err != nil {
		return domain.Cart{}, noRows(err)
	}
	return c, nil
}

func (q *Queries) GetActiveCartByUser(ctx context.Context, userID int64) (domain.Cart, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+cartColumns+` FROM carts
		WHERE user_id = $1 AND is_active = TRUE`, userID)
	c, err := scanCart(row)
	if err != nil {
		return domain.Cart{}, noRows(err)
	}
	return c, nil
}

func (q *Queries) GetActiveCartBySession(ctx context.Context, token string) (domain.Cart, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+cartColumns+` FROM carts
		WHERE session_token = $1 AND user_id IS NULL AND is_active = TRUE`, token)
	c, err := scanCart(row)
	if err != nil {
		return domain.Cart{}, noRows(err)
	}
	return c, nil
}

// DeactivateCart retires a cart without deleting it, preserving its lines
// for history.
func (q *Queries) DeactivateCart(ctx context.Context, id int64) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE carts SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const cartItemColumns = `id, cart_id, product_id, quantity, unit_price, created_at, updated_at`

func scanCartItem(row pgx.Row) (domain.CartItem, error) {
	var i domain.CartItem
	err := row.Scan(&i.ID, &i.CartID, &i.ProductID, &i.Quantity, &i.UnitPrice, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

// UpsertCartItemParams adds a product line or increments an existing one.
type UpsertCartItemParams struct {
	CartID    int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// UpsertCartItem inserts a line or, when the (cart, product) pair already
// exists, adds to its quantity. The existing line's unit_price snapshot is
// retained; the incoming price only applies to brand-new lines. The upsert
// is a single atomic statement so concurrent adds cannot create duplicate
// rows.
func (q *Queries) UpsertCartItem(ctx context.Context, arg UpsertCartItemParams) (domain.CartItem, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING `+cartItemColumns,
		arg.CartID, arg.ProductID, arg.Quantity, arg.UnitPrice)
	return scanCartItem(row)
}

func (q *Queries) GetCartItemByID(ctx context.Context, id int64) (domain.CartItem, error) {
	row := q.db.QueryRow(ctx, `SELECT `+cartItemColumns+` FROM cart_items WHERE id = $1`, id)
	i, err := scanCartItem(row)
	if err != nil {
		return domain.CartItem{}, noRows(err)
	}
	return i, nil
}

func (q *Queries) SetCartItemQuantity(ctx context.Context, id int64, quantity int) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE cart_items SET quantity = $2, updated_at = NOW() WHERE id = $1`,
		id, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *Queries) DeleteCartItem(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	return err
}

func (q *Queries) ListCartItems(ctx context.Context, cartID int64) ([]domain.CartItem, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+cartItemColumns+` FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at, id`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		i, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// ListCartLines joins cart items with product display fields.
func (q *Queries) ListCartLines(ctx context.Context, cartID int64) ([]domain.CartLine, error) {
	rows, err := q.db.Query(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.unit_price,
			ci.created_at, ci.updated_at,
			p.name, p.slug, p.image_url, p.price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at, ci.id`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		err := rows.Scan(
			&l.ID, &l.CartID, &l.ProductID, &l.Quantity, &l.UnitPrice,
			&l.CreatedAt, &l.UpdatedAt,
			&l.ProductName, &l.ProductSlug, &l.ImageURL, &l.CurrentPrice,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (q *Queries) ClearCartItems(ctx context.Context, cartID int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}
