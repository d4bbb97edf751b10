package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/papertrail/storefront/internal/domain"
)

const productColumns = `id, name, slug, description, category, price, stock_quantity,
	weight, dimensions, image_url, is_active, is_featured, is_bestseller,
	created_at, modified_at`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Category, &p.Price,
		&p.StockQuantity, &p.Weight, &p.Dimensions, &p.ImageURL,
		&p.IsActive, &p.IsFeatured, &p.IsBestseller, &p.CreatedAt, &p.ModifiedAt,
	)
	return p, err
}

// CreateProductParams holds the column values for a new product row.
type CreateProductParams struct {
	Name          string
	Slug          string
	Description   string
	Category      domain.Category
	Price         decimal.Decimal
	StockQuantity int
	Weight        string
	Dimensions    string
	ImageURL      string
	IsActive      bool
	IsFeatured    bool
	IsBestseller  bool
}

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (domain.Product, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO products (name, slug, description, category, price, stock_quantity,
			weight, dimensions, image_url, is_active, is_featured, is_bestseller)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+productColumns,
		arg.Name, arg.Slug, arg.Description, arg.Category, arg.Price, arg.StockQuantity,
		arg.Weight, arg.Dimensions, arg.ImageURL, arg.IsActive, arg.IsFeatured, arg.IsBestseller,
	)
	return scanProduct(row)
}

func (q *Queries) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	row := q.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, noRows(err)
	}
	return p, nil
}

func (q *Queries) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	row := q.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	p, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, noRows(err)
	}
	return p, nil
}

// GetProductForUpdate locks the product row for the remainder of the
// enclosing transaction. Checkout and ledger writes use it so concurrent
// stock mutations serialize per product.
func (q *Queries) GetProductForUpdate(ctx context.Context, id int64) (domain.Product, error) {
	row := q.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
	p, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, noRows(err)
	}
	return p, nil
}

// ListProductsParams filters and orders a catalog listing.
type ListProductsParams struct {
	Search          string
	Categories      []string
	OrderBy         string // validated ORDER BY clause chosen by the service
	IncludeInactive bool
}

func (q *Queries) ListProducts(ctx context.Context, arg ListProductsParams) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}

	if !arg.IncludeInactive {
		query += ` AND is_active = TRUE`
	}
	if arg.Search != "" {
		args = append(args, "%"+arg.Search+"%")
		query += fmt.Sprintf(` AND (name ILIKE $%d OR description ILIKE $%d)`, len(args), len(args))
	}
	if len(arg.Categories) > 0 {
		args = append(args, arg.Categories)
		query += fmt.Sprintf(` AND category = ANY($%d)`, len(args))
	}

	orderBy := arg.OrderBy
	if orderBy == "" {
		orderBy = "name ASC"
	}
	query += ` ORDER BY ` + orderBy

	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (q *Queries) ListFeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	return q.listFlagged(ctx, "is_featured", limit)
}

func (q *Queries) ListBestsellerProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	return q.listFlagged(ctx, "is_bestseller", limit)
}

func (q *Queries) listFlagged(ctx context.Context, flag string, limit int) ([]domain.Product, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE is_active = TRUE AND `+flag+` = TRUE
		ORDER BY name ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (q *Queries) ListNewArrivals(ctx context.Context, since time.Time, limit int) ([]domain.Product, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE is_active = TRUE AND created_at >= $1
		ORDER BY created_at DESC
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (q *Queries) ListRelatedProducts(ctx context.Context, category domain.Category, excludeSlug string, limit int) ([]domain.Product, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE is_active = TRUE AND category = $1 AND slug <> $2
		ORDER BY name ASC
		LIMIT $3`, category, excludeSlug, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

// ExistingCategories returns the categories that currently have active
// products, for the shop filter sidebar.
func (q *Queries) ExistingCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := q.db.Query(ctx, `
		SELECT DISTINCT category FROM products
		WHERE is_active = TRUE
		ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateProductParams carries the full column set; the service merges
// partial updates against the existing row before calling this.
type UpdateProductParams struct {
	ID           int64
	Name         string
	Slug         string
	Description  string
	Category     domain.Category
	Price        decimal.Decimal
	Weight       string
	Dimensions   string
	ImageURL     string
	IsActive     bool
	IsFeatured   bool
	IsBestseller bool
}

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (domain.Product, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE products
		SET name = $2, slug = $3, description = $4, category = $5, price = $6,
			weight = $7, dimensions = $8, image_url = $9,
			is_active = $10, is_featured = $11, is_bestseller = $12,
			modified_at = NOW()
		WHERE id = $1
		RETURNING `+productColumns,
		arg.ID, arg.Name, arg.Slug, arg.Description, arg.Category, arg.Price,
		arg.Weight, arg.Dimensions, arg.ImageURL, arg.IsActive, arg.IsFeatured, arg.IsBestseller,
	)
	p, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, noRows(err)
	}
	return p, nil
}

// SetProductStock overwrites stock_quantity. Only the inventory ledger
// calls this, inside the same transaction as the ledger insert.
func (q *Queries) SetProductStock(ctx context.Context, id int64, quantity int) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE products SET stock_quantity = $2, modified_at = NOW() WHERE id = $1`,
		id, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementProductStock atomically subtracts quantity, guarded so stock
// cannot go negative. Returns ErrNotFound when the guard fails, letting
// checkout abort instead of overselling.
func (q *Queries) DecrementProductStock(ctx context.Context, id int64, quantity int) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity - $2, modified_at = NOW()
		WHERE id = $1 AND stock_quantity >= $2`,
		id, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *Queries) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
