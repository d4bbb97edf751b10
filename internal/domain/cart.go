package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Identity names the owner of a cart: either an authenticated account or
// an anonymous session token, never both. Identity resolution happens at
// the HTTP boundary; services receive it explicitly rather than reading
// ambient request state.
type Identity struct {
	AccountID    *int64
	SessionToken string
}

// AccountIdentity returns an identity for an authenticated account.
func AccountIdentity(accountID int64) Identity {
	return Identity{AccountID: &accountID}
}

// SessionIdentity returns an identity for an anonymous session token.
func SessionIdentity(token string) Identity {
	return Identity{SessionToken: token}
}

// Valid reports whether exactly one owner is set.
func (id Identity) Valid() bool {
	return (id.AccountID != nil) != (id.SessionToken != "")
}

// Cart is a pre-purchase collection of product lines owned by one identity.
// Exactly one active cart exists per owner; carts are deactivated, not
// deleted, when merged into an account cart.
type Cart struct {
	ID           int64      `json:"id"`
	UserID       *int64     `json:"user_id,omitempty"`
	SessionToken *string    `json:"-"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CartItem is one product line in a cart. UnitPrice is the price snapshot
// taken when the line was first added, not the live product price.
type CartItem struct {
	ID        int64           `json:"id"`
	CartID    int64           `json:"cart_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LineTotal returns UnitPrice x Quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartLine is a cart item joined with product display fields.
type CartLine struct {
	CartItem
	ProductName  string          `json:"product_name"`
	ProductSlug  string          `json:"product_slug"`
	ImageURL     string          `json:"image_url,omitempty"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// CartSummary aggregates a cart with its lines and derived totals.
type CartSummary struct {
	Cart      Cart            `json:"cart"`
	Lines     []CartLine      `json:"lines"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
