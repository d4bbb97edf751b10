package service

import (
	"github.com/papertrail/storefront/internal/domain"
)

// Catalog errors - use domain.ENOTFOUND
var (
	ErrProductNotFound = domain.Errorf(domain.ENOTFOUND, "", "Product not found")
	ErrCartNotFound    = domain.Errorf(domain.ENOTFOUND, "", "Cart not found")
	ErrOrderNotFound   = domain.Errorf(domain.ENOTFOUND, "", "Order not found")
	ErrAddressNotFound = domain.Errorf(domain.ENOTFOUND, "", "Address not found")
)

// Validation errors - use domain.EINVALID
var (
	ErrInvalidQuantity = domain.Errorf(domain.EINVALID, "", "Quantity must be greater than 0")
	ErrInvalidCategory = domain.Errorf(domain.EINVALID, "", "Unknown product category")
	ErrInvalidIdentity = domain.Errorf(domain.EINVALID, "", "Exactly one cart owner must be set")
	ErrEmptyCart       = domain.Errorf(domain.EINVALID, "", "Cart is empty")
)

// Checkout and inventory conflicts
var (
	ErrInsufficientStock   = domain.Errorf(domain.ECONFLICT, "", "Insufficient stock for one or more items")
	ErrProductDiscontinued = domain.Errorf(domain.ECONFLICT, "", "Product is no longer available")
	ErrNegativeStock       = domain.Errorf(domain.EINVALID, "", "Stock quantity cannot go below zero")
	ErrInvalidStatusChange = domain.Errorf(domain.EINVALID, "", "Invalid order status")
)

// Account errors
var (
	ErrEmailTaken         = domain.Errorf(domain.ECONFLICT, "", "An account with this email already exists")
	ErrInvalidCredentials = domain.Errorf(domain.EUNAUTHORIZED, "", "Invalid email or password")
	ErrUnknownEmail       = domain.Errorf(domain.EUNAUTHORIZED, "", "No account found with this email.")
	ErrIncorrectPassword  = domain.Errorf(domain.EUNAUTHORIZED, "", "Incorrect password.")
	ErrSessionExpired     = domain.Errorf(domain.EUNAUTHORIZED, "", "Session has expired")
)
