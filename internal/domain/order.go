package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus tracks an order through fulfillment.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a completed checkout. Buyer fields are captured as free text at
// checkout time, not live references. Once created, only the status may
// change; the items and totals are the durable record of the transaction
// and are never re-derived from live cart or product state.
type Order struct {
	ID            int64           `json:"id"`
	OrderNumber   string          `json:"order_number"`
	UserID        *int64          `json:"user_id,omitempty"`
	FullName      string          `json:"full_name"`
	Email         string          `json:"email"`
	Address       string          `json:"address"`
	PaymentMethod string          `json:"payment_method"`
	Status        OrderStatus     `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	ShippingFee   decimal.Decimal `json:"shipping_fee"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PlacedAt      time.Time       `json:"placed_at"`
}

// OrderItem is one product line of an order. UnitPrice snapshots the
// product price at order time, independent of later price changes.
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// TotalPrice returns UnitPrice x Quantity.
func (i OrderItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderDetail aggregates an order with its items.
type OrderDetail struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}
