// Package domain provides the core business types shared by the
// storefront services, repository, and HTTP handlers.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a product. The set is fixed; new categories
// require a migration of the check constraint.
type Category string

const (
	CategoryNotebooks Category = "notebooks"
	CategoryPapers    Category = "papers"
	CategoryPencils   Category = "pencils"
	CategoryPens      Category = "pens"
)

// Categories lists all valid product categories.
var Categories = []Category{CategoryNotebooks, CategoryPapers, CategoryPencils, CategoryPens}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// StockStatus is a derived display label for a product's availability.
// It is computed from is_active and stock_quantity and never stored.
type StockStatus string

const (
	StockStatusDiscontinued StockStatus = "Discontinued"
	StockStatusOutOfStock   StockStatus = "Out of Stock"
	StockStatusLowStock     StockStatus = "Low Stock"
	StockStatusInStock      StockStatus = "In Stock"
)

// LowStockThreshold is the stock quantity at or below which an active
// product is reported as low stock.
const LowStockThreshold = 5

// Product is a catalog item. Once referenced by an order item a product
// is never hard-deleted; it is deactivated instead.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Description   string          `json:"description"`
	Category      Category        `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Weight        string          `json:"weight,omitempty"`
	Dimensions    string          `json:"dimensions,omitempty"`
	ImageURL      string          `json:"image_url,omitempty"`
	IsActive      bool            `json:"is_active"`
	IsFeatured    bool            `json:"is_featured"`
	IsBestseller  bool            `json:"is_bestseller"`
	CreatedAt     time.Time       `json:"created_at"`
	ModifiedAt    time.Time       `json:"modified_at"`
}

// StockStatus derives the availability label for the product.
func (p Product) StockStatus() StockStatus {
	switch {
	case !p.IsActive:
		return StockStatusDiscontinued
	case p.StockQuantity <= 0:
		return StockStatusOutOfStock
	case p.StockQuantity <= LowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// Product sort keys. The values match the storefront query parameters.
const (
	SortNameAsc       = "a-to-z"
	SortNameDesc      = "z-to-a"
	SortPriceAsc      = "price-lowest-first"
	SortPriceDesc     = "price-highest-first"
	SortRecentlyAdded = "recently-added"
)

// ProductFilter narrows and orders a catalog listing.
type ProductFilter struct {
	// Search matches name or description, case-insensitively.
	Search string

	// Categories restricts results to the given categories. Empty means all.
	Categories []Category

	// Sort is one of the Sort* keys. Unknown values fall back to name ascending.
	Sort string

	// IncludeInactive includes discontinued products (admin listings only).
	IncludeInactive bool
}

// CreateProductParams holds the fields for creating a product.
// The slug is generated from the name by the catalog service.
type CreateProductParams struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      Category        `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Weight        string          `json:"weight"`
	Dimensions    string          `json:"dimensions"`
	ImageURL      string          `json:"image_url"`
	IsActive      bool            `json:"is_active"`
	IsFeatured    bool            `json:"is_featured"`
	IsBestseller  bool            `json:"is_bestseller"`
}

// UpdateProductParams holds optional updates for a product. Nil fields are
// left unchanged. Stock quantity is deliberately absent: stock changes go
// through the inventory ledger.
type UpdateProductParams struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Category     *Category        `json:"category"`
	Price        *decimal.Decimal `json:"price"`
	Weight       *string          `json:"weight"`
	Dimensions   *string          `json:"dimensions"`
	ImageURL     *string          `json:"image_url"`
	IsActive     *bool            `json:"is_active"`
	IsFeatured   *bool            `json:"is_featured"`
	IsBestseller *bool            `json:"is_bestseller"`
}
