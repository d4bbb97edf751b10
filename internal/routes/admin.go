package routes

import (
	"github.com/papertrail/storefront/internal/middleware"
	"github.com/papertrail/storefront/internal/router"
)

// RegisterAdminRoutes registers the management API under /admin. Every
// route requires an admin account.
func RegisterAdminRoutes(r *router.Router, deps Deps) {
	admin := r.Group(middleware.RequireAdmin)

	admin.Get("/admin/dashboard", deps.Admin.Dashboard)

	// Product management
	admin.Get("/admin/products", deps.Admin.ListProducts)
	admin.Post("/admin/products", deps.Admin.CreateProduct)
	admin.Put("/admin/products/{id}", deps.Admin.UpdateProduct)

	// Inventory ledger
	admin.Get("/admin/inventory", deps.Admin.InventoryHistory)
	admin.Post("/admin/inventory", deps.Admin.RecordMovement)
	admin.Get("/admin/inventory/low-stock", deps.Admin.LowStock)

	// Order management
	admin.Put("/admin/orders/{id}/status", deps.Admin.UpdateOrderStatus)

	// Reporting
	admin.Get("/admin/reports/sales", deps.Admin.SalesReport)
	admin.Get("/admin/reports/inventory", deps.Admin.InventoryReport)

	// Customer feedback
	admin.Get("/admin/feedback", deps.Admin.ListFeedback)
}
