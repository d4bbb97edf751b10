package handler

import (
	"net/http"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/service"
)

// AddressHandler serves the user's address book. All routes sit behind
// RequireUser.
type AddressHandler struct {
	addresses service.AddressService
}

// NewAddressHandler creates an AddressHandler.
func NewAddressHandler(addresses service.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// List handles GET /addresses.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	user := domain.UserFromContext(r.Context())

	addresses, err := h.addresses.List(r.Context(), user.ID)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"addresses": addresses})
}

// Create handles POST /addresses.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := domain.UserFromContext(r.Context())

	var params domain.AddressParams
	if err := decodeJSON(r, &params); err != nil {
		RespondError(w, r, err)
		return
	}

	address, err := h.addresses.Create(r.Context(), user.ID, params)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, address)
}

// Update handles PUT /addresses/{id}.
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := domain.UserFromContext(r.Context())

	addressID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var params domain.AddressParams
	if err := decodeJSON(r, &params); err != nil {
		RespondError(w, r, err)
		return
	}

	address, err := h.addresses.Update(r.Context(), user.ID, addressID, params)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, address)
}

// Delete handles DELETE /addresses/{id}.
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := domain.UserFromContext(r.Context())

	addressID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.addresses.Delete(r.Context(), user.ID, addressID); err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// SetDefault handles POST /addresses/{id}/default.
func (h *AddressHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	user := domain.UserFromContext(r.Context())

	addressID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	address, err := h.addresses.SetDefault(r.Context(), user.ID, addressID)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, address)
}
