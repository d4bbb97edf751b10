package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/papertrail/storefront/internal"
	"github.com/papertrail/storefront/internal/bootstrap"
	"github.com/papertrail/storefront/internal/handler"
	"github.com/papertrail/storefront/internal/middleware"
	"github.com/papertrail/storefront/internal/repository"
	"github.com/papertrail/storefront/internal/router"
	"github.com/papertrail/storefront/internal/routes"
	"github.com/papertrail/storefront/internal/service"
	"github.com/papertrail/storefront/internal/shipping"
	"github.com/papertrail/storefront/internal/telemetry"
)

const sessionPurgeInterval = time.Hour

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// database/sql connection for running migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed")

	// pgx pool for the application itself
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	store := repository.NewStore(pool)

	// Metrics
	httpMetrics := middleware.NewMetrics("papertrail")
	businessMetrics := telemetry.NewBusinessMetrics("papertrail")

	// Shipping fee tiers
	shippingCalc, err := shipping.NewTieredFlatFee(
		cfg.Shipping.Threshold,
		cfg.Shipping.StandardFee,
		cfg.Shipping.HeavyFee,
	)
	if err != nil {
		return fmt.Errorf("invalid shipping configuration: %w", err)
	}

	// Services
	catalogService := service.NewCatalogService(store)
	cartService := service.NewCartService(store, businessMetrics)
	checkoutService := service.NewCheckoutService(store, shippingCalc, businessMetrics)
	orderService := service.NewOrderService(store)
	inventoryService := service.NewInventoryService(store, businessMetrics, cfg.Inventory.LowStockThreshold)
	addressService := service.NewAddressService(store)
	userService := service.NewUserService(store, cartService, businessMetrics)
	feedbackService := service.NewFeedbackService(store, businessMetrics)
	reportService := service.NewReportService(store, cfg.Inventory.LowStockThreshold)

	// Initial admin account
	if err := bootstrap.EnsureAdminUser(ctx, store, cfg.Admin, logger); err != nil {
		return err
	}

	// Handlers
	deps := routes.Deps{
		Catalog:  handler.NewCatalogHandler(catalogService),
		Cart:     handler.NewCartHandler(cartService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Orders:   handler.NewOrderHandler(orderService),
		Auth:     handler.NewAuthHandler(userService, cfg.Session),
		Address:  handler.NewAddressHandler(addressService),
		Feedback: handler.NewFeedbackHandler(feedbackService),
		Admin:    handler.NewAdminHandler(catalogService, inventoryService, orderService, reportService, feedbackService),
		Health:   handler.NewHealthHandler(pool),
	}

	// Application router with the full middleware chain
	app := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		httpMetrics.Middleware,
		router.Logger(logger),
		middleware.Session(userService, cfg.Session),
		middleware.WithRequestLogger(logger),
	)
	routes.RegisterStorefrontRoutes(app, deps)
	routes.RegisterAdminRoutes(app, deps)

	// Probes and metrics skip the session chain so they never touch session state.
	ops := router.New(router.Recovery(logger))
	ops.Get("/metrics", httpMetrics.Handler().ServeHTTP)
	ops.Get("/health/live", deps.Health.Live)
	ops.Get("/health/ready", deps.Health.Ready)

	mux := http.NewServeMux()
	mux.Handle("/metrics", ops)
	mux.Handle("/health/", ops)
	mux.Handle("/", app)

	// Expired sessions accumulate between logins; sweep them in the background.
	go func() {
		ticker := time.NewTicker(sessionPurgeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := userService.PurgeExpiredSessions(ctx); err != nil {
					logger.Error("session purge failed", "error", err)
				} else if n > 0 {
					logger.Info("purged expired sessions", "count", n)
				}
			}
		}
	}()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
