package handler

import (
	"net/http"
	"strings"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/service"
)

// CatalogHandler serves the public product catalog.
type CatalogHandler struct {
	catalog service.CatalogService
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Landing handles GET /.
func (h *CatalogHandler) Landing(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Landing(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, page)
}

// List handles GET /products with optional search, category, and sort
// query parameters. Categories may repeat or be comma-separated.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var categories []domain.Category
	for _, raw := range query["category"] {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, domain.Category(c))
			}
		}
	}

	products, err := h.catalog.ListProducts(r.Context(), domain.ProductFilter{
		Search:     strings.TrimSpace(query.Get("q")),
		Categories: categories,
		Sort:       query.Get("sort"),
	})
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"products": products})
}

// Detail handles GET /products/{slug}.
func (h *CatalogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	product, related, err := h.catalog.GetProductBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{
		"product": product,
		"related": related,
	})
}

// Categories handles GET /categories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}
