package service

import (
	"context"
	"errors"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/repository"
	"github.com/papertrail/storefront/internal/telemetry"
)

// InventoryService maintains the append-only stock ledger. All stock
// changes outside checkout go through Record so the ledger and the
// product's stock quantity never drift apart.
type InventoryService interface {
	// Record applies a manual stock movement (restock, adjustment,
	// return) and appends the matching ledger row in one transaction.
	Record(ctx context.Context, params RecordMovementParams) (domain.InventoryTransaction, error)

	// History lists ledger rows, optionally for a single product.
	History(ctx context.Context, productID *int64, limit int) ([]domain.InventoryTransaction, error)

	// LowStock lists active products at or below the threshold.
	LowStock(ctx context.Context) ([]domain.Product, error)
}

// RecordMovementParams describes a manual stock movement.
type RecordMovementParams struct {
	ProductID      int64
	Type           domain.TransactionType
	QuantityChange int
	ActorID        *int64
	Note           string
}

type inventoryService struct {
	store             repository.Store
	metrics           *telemetry.BusinessMetrics
	lowStockThreshold int
}

// NewInventoryService creates an InventoryService.
func NewInventoryService(store repository.Store, metrics *telemetry.BusinessMetrics, lowStockThreshold int) InventoryService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = domain.LowStockThreshold
	}
	return &inventoryService{store: store, metrics: metrics, lowStockThreshold: lowStockThreshold}
}

func (s *inventoryService) Record(ctx context.Context, params RecordMovementParams) (domain.InventoryTransaction, error) {
	const op = "inventory.record"

	if !params.Type.Valid() {
		return domain.InventoryTransaction{}, domain.Errorf(domain.EINVALID, op, "Unknown transaction type: %s", params.Type)
	}
	if params.Type == domain.TransactionSale {
		return domain.InventoryTransaction{}, domain.Errorf(domain.EINVALID, op, "Sale movements are recorded by checkout")
	}
	if params.QuantityChange == 0 {
		return domain.InventoryTransaction{}, domain.Errorf(domain.EINVALID, op, "Quantity change must not be zero")
	}

	var txn domain.InventoryTransaction
	err := s.store.WithTx(ctx, func(q repository.Querier) error {
		product, err := q.GetProductForUpdate(ctx, params.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		after := product.StockQuantity + params.QuantityChange
		if after < 0 {
			return ErrNegativeStock
		}

		if err := q.SetProductStock(ctx, product.ID, after); err != nil {
			return err
		}

		txn, err = q.CreateInventoryTransaction(ctx, repository.CreateInventoryTransactionParams{
			ProductID:      product.ID,
			Type:           params.Type,
			QuantityChange: params.QuantityChange,
			StockBefore:    product.StockQuantity,
			StockAfter:     after,
			ActorID:        params.ActorID,
			Note:           params.Note,
		})
		return err
	})
	if err != nil {
		if domain.ErrorCode(err) != domain.EINTERNAL {
			return domain.InventoryTransaction{}, err
		}
		return domain.InventoryTransaction{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to record stock movement")
	}

	if s.metrics != nil {
		s.metrics.StockMovements.WithLabelValues(string(params.Type)).Inc()
	}
	return txn, nil
}

func (s *inventoryService) History(ctx context.Context, productID *int64, limit int) ([]domain.InventoryTransaction, error) {
	const op = "inventory.history"

	txns, err := s.store.ListInventoryTransactions(ctx, repository.ListInventoryTransactionsParams{
		ProductID: productID,
		Limit:     limit,
	})
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load inventory history")
	}
	return txns, nil
}

func (s *inventoryService) LowStock(ctx context.Context) ([]domain.Product, error) {
	const op = "inventory.lowstock"

	products, err := s.store.ListLowStockProducts(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load low stock products")
	}
	return products, nil
}
