// Package telemetry registers the Prometheus metrics exposed at /metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
type BusinessMetrics struct {
	// Product engagement
	ProductViews    *prometheus.CounterVec
	ProductSearches *prometheus.CounterVec

	// Cart
	CartCreated   prometheus.Counter
	CartItemsAdd  *prometheus.CounterVec
	CartsMerged   prometheus.Counter
	CartValue     prometheus.Histogram

	// Checkout funnel
	CheckoutCompleted prometheus.Counter
	CheckoutFailed    *prometheus.CounterVec
	OrderValue        prometheus.Histogram
	OrderItemCount    prometheus.Histogram

	// Inventory
	StockMovements *prometheus.CounterVec
	OversellAborts prometheus.Counter

	// Auth & accounts
	Signups     prometheus.Counter
	Logins      prometheus.Counter
	LoginFailed prometheus.Counter

	// Feedback
	FeedbackReceived prometheus.Counter
}

// NewBusinessMetrics creates and registers all business metrics
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "papertrail"
	}

	subsystem := "business"

	return &BusinessMetrics{
		ProductViews: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "product_views_total",
				Help:      "Total product detail page views",
			},
			[]string{"product_slug"},
		),
		ProductSearches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "product_searches_total",
				Help:      "Total catalog listings with filters applied",
			},
			[]string{"filter_type"}, // filter_type: category, search, sort, none
		),
		CartCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "carts_created_total",
				Help:      "Total carts created",
			},
		),
		CartItemsAdd: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_items_added_total",
				Help:      "Total add to cart actions",
			},
			[]string{"category"},
		),
		CartsMerged: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "carts_merged_total",
				Help:      "Total anonymous carts merged into account carts at login",
			},
		),
		CartValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_value",
				Help:      "Cart subtotal at checkout",
				Buckets:   []float64{25, 50, 100, 200, 400, 800, 1600},
			},
		),
		CheckoutCompleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_completed_total",
				Help:      "Total successful checkouts",
			},
		),
		CheckoutFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_failed_total",
				Help:      "Total failed checkouts by reason",
			},
			[]string{"reason"}, // reason: empty_cart, insufficient_stock, validation, internal
		),
		OrderValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value",
				Help:      "Order total including shipping",
				Buckets:   []float64{25, 50, 100, 200, 400, 800, 1600},
			},
		),
		OrderItemCount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_item_count",
				Help:      "Number of distinct lines per order",
				Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
			},
		),
		StockMovements: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stock_movements_total",
				Help:      "Total inventory ledger entries by type",
			},
			[]string{"type"},
		),
		OversellAborts: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "oversell_aborts_total",
				Help:      "Checkouts aborted because stock was insufficient",
			},
		),
		Signups: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "signups_total",
				Help:      "Total accounts registered",
			},
		),
		Logins: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "logins_total",
				Help:      "Total successful logins",
			},
		),
		LoginFailed: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "login_failed_total",
				Help:      "Total failed login attempts",
			},
		),
		FeedbackReceived: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "feedback_received_total",
				Help:      "Total feedback submissions",
			},
		),
	}
}

// ObserveOrder records the value histograms for a completed checkout.
func (m *BusinessMetrics) ObserveOrder(total decimal.Decimal, lines int) {
	f, _ := total.Float64()
	m.OrderValue.Observe(f)
	m.OrderItemCount.Observe(float64(lines))
	m.CheckoutCompleted.Inc()
}
