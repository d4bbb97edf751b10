package routes

import (
	"github.com/papertrail/storefront/internal/handler"
)

// Deps bundles every handler the route tables need.
type Deps struct {
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Orders   *handler.OrderHandler
	Auth     *handler.AuthHandler
	Address  *handler.AddressHandler
	Feedback *handler.FeedbackHandler
	Admin    *handler.AdminHandler
	Health   *handler.HealthHandler
}
