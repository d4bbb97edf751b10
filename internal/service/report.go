package service

import (
	"context"
	"time"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/repository"
)

const topProductLimit = 10

// ReportService aggregates sales and inventory data for the admin
// dashboard. All reads are point-in-time; nothing here mutates state.
type ReportService interface {
	Dashboard(ctx context.Context) (domain.DashboardCounts, error)
	Sales(ctx context.Context, from, to time.Time) (domain.SalesReport, error)
	Inventory(ctx context.Context, from, to time.Time) (domain.InventoryReport, error)
}

type reportService struct {
	store             repository.Store
	lowStockThreshold int
}

// NewReportService creates a ReportService.
func NewReportService(store repository.Store, lowStockThreshold int) ReportService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = domain.LowStockThreshold
	}
	return &reportService{store: store, lowStockThreshold: lowStockThreshold}
}

func (s *reportService) Dashboard(ctx context.Context) (domain.DashboardCounts, error) {
	const op = "report.dashboard"

	counts, err := s.store.DashboardCounts(ctx, s.lowStockThreshold)
	if err != nil {
		return domain.DashboardCounts{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load dashboard")
	}
	return counts, nil
}

func (s *reportService) Sales(ctx context.Context, from, to time.Time) (domain.SalesReport, error) {
	const op = "report.sales"

	from, to = normalizeWindow(from, to)

	byStatus, err := s.store.CountOrdersByStatus(ctx, from, to)
	if err != nil {
		return domain.SalesReport{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to aggregate orders")
	}
	byMonth, err := s.store.SalesByMonth(ctx, from, to)
	if err != nil {
		return domain.SalesReport{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to aggregate revenue")
	}
	top, err := s.store.TopSellingProducts(ctx, from, to, topProductLimit)
	if err != nil {
		return domain.SalesReport{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to rank products")
	}

	return domain.SalesReport{
		From:        from,
		To:          to,
		ByStatus:    byStatus,
		ByMonth:     byMonth,
		TopProducts: top,
	}, nil
}

func (s *reportService) Inventory(ctx context.Context, from, to time.Time) (domain.InventoryReport, error) {
	const op = "report.inventory"

	from, to = normalizeWindow(from, to)

	movements, err := s.store.SumMovementsByType(ctx, from, to)
	if err != nil {
		return domain.InventoryReport{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to aggregate movements")
	}
	topMoved, err := s.store.TopMovedProducts(ctx, from, to, topProductLimit)
	if err != nil {
		return domain.InventoryReport{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to rank movements")
	}
	lowStock, err := s.store.ListLowStockProducts(ctx, s.lowStockThreshold)
	if err != nil {
		return domain.InventoryReport{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load low stock")
	}

	return domain.InventoryReport{
		From:      from,
		To:        to,
		Movements: movements,
		TopMoved:  topMoved,
		LowStock:  lowStock,
	}, nil
}

// normalizeWindow fills in missing bounds: zero from means the beginning
// of time, zero to means now.
func normalizeWindow(from, to time.Time) (time.Time, time.Time) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = time.Unix(0, 0)
	}
	return from, to
}
