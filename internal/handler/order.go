package handler

import (
	"net/http"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/service"
)

// OrderHandler serves a buyer's order history. Both routes sit behind
// RequireUser.
type OrderHandler struct {
	orders service.OrderService
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List handles GET /orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	user := domain.UserFromContext(r.Context())

	orders, err := h.orders.ListForUser(r.Context(), user.ID)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// Detail handles GET /orders/{number}.
func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	user := domain.UserFromContext(r.Context())

	detail, err := h.orders.GetForUser(r.Context(), user.ID, r.PathValue("number"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, detail)
}
