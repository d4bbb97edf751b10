package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/service"
)

// AdminHandler serves the management API. Every route sits behind
// RequireAdmin.
type AdminHandler struct {
	catalog   service.CatalogService
	inventory service.InventoryService
	orders    service.OrderService
	reports   service.ReportService
	feedback  service.FeedbackService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(
	catalog service.CatalogService,
	inventory service.InventoryService,
	orders service.OrderService,
	reports service.ReportService,
	feedback service.FeedbackService,
) *AdminHandler {
	return &AdminHandler{
		catalog:   catalog,
		inventory: inventory,
		orders:    orders,
		reports:   reports,
		feedback:  feedback,
	}
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.reports.Dashboard(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, counts)
}

// ListProducts handles GET /admin/products. Unlike the public catalog,
// discontinued products are included.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context(), domain.ProductFilter{
		Search:          r.URL.Query().Get("q"),
		Sort:            r.URL.Query().Get("sort"),
		IncludeInactive: true,
	})
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"products": products})
}

// CreateProduct handles POST /admin/products.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var params domain.CreateProductParams
	if err := decodeJSON(r, &params); err != nil {
		RespondError(w, r, err)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), params)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /admin/products/{id}. Absent fields keep
// their current values.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var params domain.UpdateProductParams
	if err := decodeJSON(r, &params); err != nil {
		RespondError(w, r, err)
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), productID, params)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, product)
}

// RecordMovement handles POST /admin/inventory.
func (h *AdminHandler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	admin := domain.UserFromContext(r.Context())

	var input struct {
		ProductID      int64  `json:"product_id"`
		Type           string `json:"type"`
		QuantityChange int    `json:"quantity_change"`
		Note           string `json:"note"`
	}
	if err := decodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	txn, err := h.inventory.Record(r.Context(), service.RecordMovementParams{
		ProductID:      input.ProductID,
		Type:           domain.TransactionType(input.Type),
		QuantityChange: input.QuantityChange,
		ActorID:        &admin.ID,
		Note:           input.Note,
	})
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, txn)
}

// InventoryHistory handles GET /admin/inventory with optional product_id
// and limit query parameters.
func (h *AdminHandler) InventoryHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var productID *int64
	if raw := query.Get("product_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			RespondError(w, r, domain.Invalid("inventory.history", "Invalid product_id"))
			return
		}
		productID = &id
	}

	limit, _ := strconv.Atoi(query.Get("limit"))

	txns, err := h.inventory.History(r.Context(), productID, limit)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"transactions": txns})
}

// LowStock handles GET /admin/inventory/low-stock.
func (h *AdminHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.inventory.LowStock(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"products": products})
}

// UpdateOrderStatus handles PUT /admin/orders/{id}/status.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), orderID, domain.OrderStatus(input.Status)); err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// SalesReport handles GET /admin/reports/sales with optional from/to
// query parameters (RFC 3339 dates).
func (h *AdminHandler) SalesReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := reportWindow(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	report, err := h.reports.Sales(r.Context(), from, to)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, report)
}

// InventoryReport handles GET /admin/reports/inventory.
func (h *AdminHandler) InventoryReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := reportWindow(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	report, err := h.reports.Inventory(r.Context(), from, to)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, report)
}

// ListFeedback handles GET /admin/feedback.
func (h *AdminHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	feedback, err := h.feedback.List(r.Context(), limit)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"feedback": feedback})
}

func reportWindow(r *http.Request) (from, to time.Time, err error) {
	query := r.URL.Query()

	if raw := query.Get("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return from, to, domain.Invalid("report.window", "from must be an RFC 3339 timestamp")
		}
	}
	if raw := query.Get("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return from, to, domain.Invalid("report.window", "to must be an RFC 3339 timestamp")
		}
	}
	return from, to, nil
}
