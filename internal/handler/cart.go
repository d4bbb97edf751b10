package handler

import (
	"net/http"
	"strconv"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/service"
)

// CartHandler serves the shopper's cart.
type CartHandler struct {
	carts service.CartService
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(carts service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// View handles GET /cart.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	summary, err := h.carts.Summary(r.Context(), identityFrom(r))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, summary)
}

// AddItem handles POST /cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	if err := decodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	summary, err := h.carts.AddLine(r.Context(), identityFrom(r), input.ProductID, input.Quantity)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, summary)
}

// UpdateItem handles PUT /cart/items/{id}. Quantity zero removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	summary, err := h.carts.SetLineQuantity(r.Context(), identityFrom(r), itemID, input.Quantity)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, summary)
}

// RemoveItem handles DELETE /cart/items/{id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	summary, err := h.carts.RemoveLine(r.Context(), identityFrom(r), itemID)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, summary)
}

// pathID parses a numeric path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("request.path", "Invalid "+name+" in URL")
	}
	return id, nil
}
