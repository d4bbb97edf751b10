package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/repository"
)

const (
	// newArrivalWindow is how far back the landing page looks for new products.
	newArrivalWindow = 30 * 24 * time.Hour

	// landingLimit caps each landing page section.
	landingLimit = 8

	relatedLimit = 4
)

// CatalogService provides product browsing and admin catalog management.
type CatalogService interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (domain.Product, []domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (domain.Product, error)
	Landing(ctx context.Context) (LandingPage, error)
	Categories(ctx context.Context) ([]domain.Category, error)

	CreateProduct(ctx context.Context, params domain.CreateProductParams) (domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, params domain.UpdateProductParams) (domain.Product, error)
}

// LandingPage groups the product sections shown on the storefront home.
type LandingPage struct {
	Featured    []domain.Product `json:"featured"`
	Bestsellers []domain.Product `json:"bestsellers"`
	NewArrivals []domain.Product `json:"new_arrivals"`
}

type catalogService struct {
	store repository.Store
}

// NewCatalogService creates a CatalogService backed by store.
func NewCatalogService(store repository.Store) CatalogService {
	return &catalogService{store: store}
}

func (s *catalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	const op = "catalog.list"

	categories := make([]string, 0, len(filter.Categories))
	for _, c := range filter.Categories {
		if !c.Valid() {
			return nil, domain.Errorf(domain.EINVALID, op, "Unknown category: %s", c)
		}
		categories = append(categories, string(c))
	}

	products, err := s.store.ListProducts(ctx, repository.ListProductsParams{
		Search:          strings.TrimSpace(filter.Search),
		Categories:      categories,
		OrderBy:         orderClause(filter.Sort),
		IncludeInactive: filter.IncludeInactive,
	})
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, op, "Unable to list products")
	}
	return products, nil
}

// orderClause maps a storefront sort key to a whitelisted ORDER BY clause.
// Unknown keys fall back to name ascending.
func orderClause(sort string) string {
	switch sort {
	case domain.SortNameDesc:
		return "name DESC"
	case domain.SortPriceAsc:
		return "price ASC, name ASC"
	case domain.SortPriceDesc:
		return "price DESC, name ASC"
	case domain.SortRecentlyAdded:
		return "created_at DESC"
	default:
		return "name ASC"
	}
}

func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (domain.Product, []domain.Product, error) {
	const op = "catalog.get"

	product, err := s.store.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Product{}, nil, ErrProductNotFound
		}
		return domain.Product{}, nil, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load product")
	}

	related, err := s.store.ListRelatedProducts(ctx, product.Category, product.Slug, relatedLimit)
	if err != nil {
		return domain.Product{}, nil, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load related products")
	}

	return product, related, nil
}

func (s *catalogService) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	const op = "catalog.get"

	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load product")
	}
	return product, nil
}

func (s *catalogService) Landing(ctx context.Context) (LandingPage, error) {
	const op = "catalog.landing"

	featured, err := s.store.ListFeaturedProducts(ctx, landingLimit)
	if err != nil {
		return LandingPage{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load featured products")
	}
	bestsellers, err := s.store.ListBestsellerProducts(ctx, landingLimit)
	if err != nil {
		return LandingPage{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load bestsellers")
	}
	arrivals, err := s.store.ListNewArrivals(ctx, time.Now().Add(-newArrivalWindow), landingLimit)
	if err != nil {
		return LandingPage{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load new arrivals")
	}

	return LandingPage{Featured: featured, Bestsellers: bestsellers, NewArrivals: arrivals}, nil
}

func (s *catalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	const op = "catalog.categories"

	categories, err := s.store.ExistingCategories(ctx)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load categories")
	}
	return categories, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, params domain.CreateProductParams) (domain.Product, error) {
	const op = "catalog.create"

	validation := domain.NewValidationError(op)
	if strings.TrimSpace(params.Name) == "" {
		validation.AddFieldError("name", "Name is required")
	}
	if !params.Category.Valid() {
		validation.AddFieldError("category", "Unknown category")
	}
	if params.Price.IsNegative() {
		validation.AddFieldError("price", "Price must not be negative")
	}
	if params.StockQuantity < 0 {
		validation.AddFieldError("stock_quantity", "Stock must not be negative")
	}
	if len(validation.Fields) > 0 {
		return domain.Product{}, validation
	}

	slug, err := s.uniqueSlug(ctx, params.Name)
	if err != nil {
		return domain.Product{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to generate slug")
	}

	product, err := s.store.CreateProduct(ctx, repository.CreateProductParams{
		Name:          strings.TrimSpace(params.Name),
		Slug:          slug,
		Description:   params.Description,
		Category:      params.Category,
		Price:         params.Price,
		StockQuantity: params.StockQuantity,
		Weight:        params.Weight,
		Dimensions:    params.Dimensions,
		ImageURL:      params.ImageURL,
		IsActive:      params.IsActive,
		IsFeatured:    params.IsFeatured,
		IsBestseller:  params.IsBestseller,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return domain.Product{}, domain.Errorf(domain.ECONFLICT, op, "A product with this name already exists")
		}
		return domain.Product{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to create product")
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id int64, params domain.UpdateProductParams) (domain.Product, error) {
	const op = "catalog.update"

	current, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load product")
	}

	// The slug is stable across renames so bookmarked product URLs keep
	// working.
	merged := repository.UpdateProductParams{
		ID:           current.ID,
		Slug:         current.Slug,
		Name:         current.Name,
		Description:  current.Description,
		Category:     current.Category,
		Price:        current.Price,
		Weight:       current.Weight,
		Dimensions:   current.Dimensions,
		ImageURL:     current.ImageURL,
		IsActive:     current.IsActive,
		IsFeatured:   current.IsFeatured,
		IsBestseller: current.IsBestseller,
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return domain.Product{}, domain.Errorf(domain.EINVALID, op, "Name must not be empty")
		}
		merged.Name = strings.TrimSpace(*params.Name)
	}
	if params.Description != nil {
		merged.Description = *params.Description
	}
	if params.Category != nil {
		if !params.Category.Valid() {
			return domain.Product{}, domain.Errorf(domain.EINVALID, op, "Unknown category: %s", *params.Category)
		}
		merged.Category = *params.Category
	}
	if params.Price != nil {
		if params.Price.IsNegative() {
			return domain.Product{}, domain.Errorf(domain.EINVALID, op, "Price must not be negative")
		}
		merged.Price = *params.Price
	}
	if params.Weight != nil {
		merged.Weight = *params.Weight
	}
	if params.Dimensions != nil {
		merged.Dimensions = *params.Dimensions
	}
	if params.ImageURL != nil {
		merged.ImageURL = *params.ImageURL
	}
	if params.IsActive != nil {
		merged.IsActive = *params.IsActive
	}
	if params.IsFeatured != nil {
		merged.IsFeatured = *params.IsFeatured
	}
	if params.IsBestseller != nil {
		merged.IsBestseller = *params.IsBestseller
	}

	product, err := s.store.UpdateProduct(ctx, merged)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to update product")
	}
	return product, nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the name and collapses runs of non-alphanumerics
// into single hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// uniqueSlug appends a numeric suffix until the slug is unused.
func (s *catalogService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "product"
	}

	slug := base
	for n := 2; ; n++ {
		taken, err := s.store.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
