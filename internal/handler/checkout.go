package handler

import (
	"net/http"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/service"
)

// CheckoutHandler turns carts into orders.
type CheckoutHandler struct {
	checkout service.CheckoutService
}

// NewCheckoutHandler creates a CheckoutHandler.
func NewCheckoutHandler(checkout service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Preview handles GET /checkout.
func (h *CheckoutHandler) Preview(w http.ResponseWriter, r *http.Request) {
	preview, err := h.checkout.Preview(r.Context(), identityFrom(r))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, preview)
}

// Place handles POST /checkout. The route sits behind RequireUser, so a
// user is always present.
func (h *CheckoutHandler) Place(w http.ResponseWriter, r *http.Request) {
	user := domain.UserFromContext(r.Context())

	var input domain.CheckoutInput
	if err := decodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	detail, err := h.checkout.PlaceOrder(r.Context(), user.ID, identityFrom(r), input)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, detail)
}
