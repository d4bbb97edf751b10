package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papertrail/storefront/internal/domain"
)

func TestSalesReport(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	seedNotebook(store, "45.00", 100)
	orders := NewOrderService(store)
	svc := NewReportService(store, 5)

	completed := placeTestOrder(t, store, 1, 2)  // 90.00 + 50.00 shipping
	placeTestOrder(t, store, 1, 1)               // stays pending
	cancelled := placeTestOrder(t, store, 2, 1)

	require.NoError(t, orders.UpdateStatus(ctx, completed.Order.ID, domain.OrderStatusCompleted))
	require.NoError(t, orders.UpdateStatus(ctx, cancelled.Order.ID, domain.OrderStatusCancelled))

	report, err := svc.Sales(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)

	byStatus := map[domain.OrderStatus]int64{}
	for _, sc := range report.ByStatus {
		byStatus[sc.Status] = sc.Count
	}
	assert.Equal(t, int64(1), byStatus[domain.OrderStatusCompleted])
	assert.Equal(t, int64(1), byStatus[domain.OrderStatusPending])
	assert.Equal(t, int64(1), byStatus[domain.OrderStatusCancelled])

	// Only completed orders count toward revenue.
	require.Len(t, report.ByMonth, 1)
	assert.Equal(t, int64(1), report.ByMonth[0].Orders)
	assert.True(t, report.ByMonth[0].Revenue.Equal(completed.Order.TotalAmount))

	// Cancelled orders are excluded from the product ranking.
	require.Len(t, report.TopProducts, 1)
	assert.Equal(t, int64(3), report.TopProducts[0].UnitsSold, "completed and pending, not cancelled")
}

func TestInventoryReport(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	notebook := seedNotebook(store, "45.00", 3)
	inventory := NewInventoryService(store, nil, 5)
	svc := NewReportService(store, 5)

	_, err := inventory.Record(ctx, RecordMovementParams{
		ProductID:      notebook.ID,
		Type:           domain.TransactionRestock,
		QuantityChange: 20,
	})
	require.NoError(t, err)

	placeTestOrder(t, store, 1, 4)

	report, err := svc.Inventory(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)

	byType := map[domain.TransactionType]domain.MovementSummary{}
	for _, m := range report.Movements {
		byType[m.Type] = m
	}
	assert.Equal(t, 20, byType[domain.TransactionRestock].TotalQuantity)
	assert.Equal(t, -4, byType[domain.TransactionSale].TotalQuantity)

	require.Len(t, report.TopMoved, 1)
	assert.Equal(t, 4, report.TopMoved[0].UnitsSold)

	assert.Empty(t, report.LowStock, "restock lifted the product above the threshold")
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	seedNotebook(store, "45.00", 3)
	orders := NewOrderService(store)
	users := newUserService(store)
	svc := NewReportService(store, 5)

	_, err := users.Register(ctx, "", validRegisterInput())
	require.NoError(t, err)

	completed := placeTestOrder(t, store, 1, 1)
	placeTestOrder(t, store, 2, 1)
	require.NoError(t, orders.UpdateStatus(ctx, completed.Order.ID, domain.OrderStatusCompleted))

	counts, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Products)
	assert.Equal(t, int64(2), counts.Orders)
	assert.Equal(t, int64(1), counts.PendingOrders)
	assert.Equal(t, int64(1), counts.Users)
	assert.Equal(t, int64(1), counts.LowStock, "stock dropped to 1 after two sales")
	assert.True(t, counts.Revenue.Equal(completed.Order.TotalAmount))
}
