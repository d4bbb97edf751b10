package repository

import (
	"context"
	"time"

	"github.com/papertrail/storefront/internal/domain"
)

// Querier is the full query surface of the repository. Services depend on
// this interface so tests can substitute an in-memory implementation.
type Querier interface {
	// Products
	CreateProduct(ctx context.Context, arg CreateProductParams) (domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (domain.Product, error)
	GetProductForUpdate(ctx context.Context, id int64) (domain.Product, error)
	ListProducts(ctx context.Context, arg ListProductsParams) ([]domain.Product, error)
	ListFeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error)
	ListBestsellerProducts(ctx context.Context, limit int) ([]domain.Product, error)
	ListNewArrivals(ctx context.Context, since time.Time, limit int) ([]domain.Product, error)
	ListRelatedProducts(ctx context.Context, category domain.Category, excludeSlug string, limit int) ([]domain.Product, error)
	ExistingCategories(ctx context.Context) ([]domain.Category, error)
	UpdateProduct(ctx context.Context, arg UpdateProductParams) (domain.Product, error)
	SetProductStock(ctx context.Context, id int64, quantity int) error
	DecrementProductStock(ctx context.Context, id int64, quantity int) error
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Carts
	CreateCart(ctx context.Context, arg CreateCartParams) (domain.Cart, error)
	GetCartByID(ctx context.Context, id int64) (domain.Cart, error)
	GetActiveCartByUser(ctx context.Context, userID int64) (domain.Cart, error)
	GetActiveCartBySession(ctx context.Context, token string) (domain.Cart, error)
	DeactivateCart(ctx context.Context, id int64) error
	UpsertCartItem(ctx context.Context, arg UpsertCartItemParams) (domain.CartItem, error)
	GetCartItemByID(ctx context.Context, id int64) (domain.CartItem, error)
	SetCartItemQuantity(ctx context.Context, id int64, quantity int) error
	DeleteCartItem(ctx context.Context, id int64) error
	ListCartItems(ctx context.Context, cartID int64) ([]domain.CartItem, error)
	ListCartLines(ctx context.Context, cartID int64) ([]domain.CartLine, error)
	ClearCartItems(ctx context.Context, cartID int64) error

	// Orders
	CreateOrder(ctx context.Context, arg CreateOrderParams) (domain.Order, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (domain.OrderItem, error)
	GetOrderByID(ctx context.Context, id int64) (domain.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error

	// Inventory ledger
	CreateInventoryTransaction(ctx context.Context, arg CreateInventoryTransactionParams) (domain.InventoryTransaction, error)
	ListInventoryTransactions(ctx context.Context, arg ListInventoryTransactionsParams) ([]domain.InventoryTransaction, error)
	SumMovementsByType(ctx context.Context, from, to time.Time) ([]domain.MovementSummary, error)
	TopMovedProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductMovement, error)
	ListLowStockProducts(ctx context.Context, threshold int) ([]domain.Product, error)

	// Users and sessions
	CreateUser(ctx context.Context, arg CreateUserParams) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserByID(ctx context.Context, id int64) (domain.User, error)
	CreateSession(ctx context.Context, arg CreateSessionParams) (domain.Session, error)
	GetSessionByToken(ctx context.Context, token string) (domain.Session, error)
	AttachSessionUser(ctx context.Context, token string, userID int64) error
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)

	// Addresses
	CreateAddress(ctx context.Context, arg CreateAddressParams) (domain.Address, error)
	GetAddressByID(ctx context.Context, id int64) (domain.Address, error)
	ListAddressesByUser(ctx context.Context, userID int64) ([]domain.Address, error)
	UpdateAddress(ctx context.Context, arg UpdateAddressParams) (domain.Address, error)
	ClearDefaultAddress(ctx context.Context, userID int64) error
	DeleteAddress(ctx context.Context, id int64) error

	// Feedback
	CreateFeedback(ctx context.Context, arg CreateFeedbackParams) (domain.Feedback, error)
	ListFeedback(ctx context.Context, limit int) ([]domain.Feedback, error)

	// Reporting
	CountOrdersByStatus(ctx context.Context, from, to time.Time) ([]domain.StatusCount, error)
	SalesByMonth(ctx context.Context, from, to time.Time) ([]domain.MonthlySales, error)
	TopSellingProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductSales, error)
	DashboardCounts(ctx context.Context, lowStockThreshold int) (domain.DashboardCounts, error)
}

var _ Querier = (*Queries)(nil)
