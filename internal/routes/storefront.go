package routes

import (
	"github.com/papertrail/storefront/internal/middleware"
	"github.com/papertrail/storefront/internal/router"
)

// RegisterStorefrontRoutes registers the public shopping routes. The
// router's global chain already resolves the session, so every handler
// sees an identity; routes that need an account add RequireUser.
func RegisterStorefrontRoutes(r *router.Router, deps Deps) {
	// Catalog
	r.Get("/", deps.Catalog.Landing)
	r.Get("/products", deps.Catalog.List)
	r.Get("/products/{slug}", deps.Catalog.Detail)
	r.Get("/categories", deps.Catalog.Categories)

	// Cart
	r.Get("/cart", deps.Cart.View)
	r.Post("/cart/items", deps.Cart.AddItem)
	r.Put("/cart/items/{id}", deps.Cart.UpdateItem)
	r.Delete("/cart/items/{id}", deps.Cart.RemoveItem)

	// Checkout
	r.Get("/checkout", deps.Checkout.Preview)
	r.Post("/checkout", deps.Checkout.Place, middleware.RequireUser)

	// Accounts
	r.Post("/register", deps.Auth.Register)
	r.Post("/login", deps.Auth.Login)
	r.Post("/logout", deps.Auth.Logout)
	r.Get("/me", deps.Auth.Me)

	// Order history
	account := r.Group(middleware.RequireUser)
	account.Get("/orders", deps.Orders.List)
	account.Get("/orders/{number}", deps.Orders.Detail)

	// Address book
	account.Get("/addresses", deps.Address.List)
	account.Post("/addresses", deps.Address.Create)
	account.Put("/addresses/{id}", deps.Address.Update)
	account.Delete("/addresses/{id}", deps.Address.Delete)
	account.Post("/addresses/{id}/default", deps.Address.SetDefault)

	// Contact form
	r.Post("/feedback", deps.Feedback.Submit)
}
