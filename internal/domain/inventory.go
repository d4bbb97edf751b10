package domain

import "time"

// TransactionType classifies a stock movement in the inventory ledger.
type TransactionType string

const (
	TransactionSale       TransactionType = "sale"
	TransactionRestock    TransactionType = "restock"
	TransactionAdjustment TransactionType = "adjustment"
	TransactionReturn     TransactionType = "return"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionSale, TransactionRestock, TransactionAdjustment, TransactionReturn:
		return true
	}
	return false
}

// InventoryTransaction is one append-only ledger row recording a stock
// change. StockBefore and StockAfter snapshot the product's stock quantity
// at the moment of the event; StockAfter = StockBefore + QuantityChange
// always holds. Rows are never updated or deleted.
type InventoryTransaction struct {
	ID             int64           `json:"id"`
	ProductID      int64           `json:"product_id"`
	Type           TransactionType `json:"transaction_type"`
	QuantityChange int             `json:"quantity_change"`
	StockBefore    int             `json:"stock_before"`
	StockAfter     int             `json:"stock_after"`
	OrderID        *int64          `json:"order_id,omitempty"`
	ActorID        *int64          `json:"actor_id,omitempty"`
	Note           string          `json:"note,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// MovementSummary aggregates ledger quantity changes for one transaction
// type over a reporting window.
type MovementSummary struct {
	Type          TransactionType `json:"transaction_type"`
	Transactions  int             `json:"transactions"`
	TotalQuantity int             `json:"total_quantity"`
}

// ProductMovement reports total ledger movement for one product, used for
// the top-moved listing on the admin dashboard.
type ProductMovement struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitsSold   int    `json:"units_sold"`
}
