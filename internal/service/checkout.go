package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/repository"
	"github.com/papertrail/storefront/internal/shipping"
	"github.com/papertrail/storefront/internal/telemetry"
)

// CheckoutService converts a cart into an order.
type CheckoutService interface {
	// Preview prices the identity's cart without mutating anything.
	Preview(ctx context.Context, identity domain.Identity) (CheckoutPreview, error)

	// PlaceOrder validates the input and runs the checkout transaction:
	// stock is re-checked and decremented, the order and its items are
	// written, a sale ledger row is appended per line, and the cart is
	// emptied. Everything commits or nothing does.
	PlaceOrder(ctx context.Context, userID int64, identity domain.Identity, input domain.CheckoutInput) (domain.OrderDetail, error)
}

// CheckoutPreview shows the totals a buyer would be charged right now.
// Lines are priced at the current product price, not the cart snapshot.
type CheckoutPreview struct {
	Lines       []domain.CartLine `json:"lines"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	ShippingFee decimal.Decimal   `json:"shipping_fee"`
	Total       decimal.Decimal   `json:"total"`
}

type checkoutService struct {
	store    repository.Store
	shipping shipping.Calculator
	validate *validator.Validate
	metrics  *telemetry.BusinessMetrics
}

// NewCheckoutService creates a CheckoutService.
func NewCheckoutService(store repository.Store, calc shipping.Calculator, metrics *telemetry.BusinessMetrics) CheckoutService {
	return &checkoutService{
		store:    store,
		shipping: calc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		metrics:  metrics,
	}
}

func (s *checkoutService) Preview(ctx context.Context, identity domain.Identity) (CheckoutPreview, error) {
	const op = "checkout.preview"

	if !identity.Valid() {
		return CheckoutPreview{}, ErrInvalidIdentity
	}

	cart, err := s.activeCart(ctx, s.store, identity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return CheckoutPreview{}, ErrEmptyCart
		}
		return CheckoutPreview{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load cart")
	}

	lines, err := s.store.ListCartLines(ctx, cart.ID)
	if err != nil {
		return CheckoutPreview{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load cart lines")
	}
	if len(lines) == 0 {
		return CheckoutPreview{}, ErrEmptyCart
	}

	return s.price(lines)
}

// price totals the lines at current product prices and applies the
// shipping tier.
func (s *checkoutService) price(lines []domain.CartLine) (CheckoutPreview, error) {
	const op = "checkout.price"

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.CurrentPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	fee, err := s.shipping.Fee(subtotal)
	if err != nil {
		return CheckoutPreview{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to compute shipping")
	}

	return CheckoutPreview{
		Lines:       lines,
		Subtotal:    subtotal,
		ShippingFee: fee,
		Total:       subtotal.Add(fee),
	}, nil
}

func (s *checkoutService) PlaceOrder(ctx context.Context, userID int64, identity domain.Identity, input domain.CheckoutInput) (domain.OrderDetail, error) {
	const op = "checkout.place"

	if err := s.validate.Struct(input); err != nil {
		validation := domain.NewValidationError(op)
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				validation.AddFieldError(strings.ToLower(fe.Field()), checkoutFieldMessage(fe))
			}
		} else {
			validation.AddFieldError("input", "Invalid checkout input")
		}
		s.failed("validation")
		return domain.OrderDetail{}, validation
	}

	var detail domain.OrderDetail
	err := s.store.WithTx(ctx, func(q repository.Querier) error {
		cart, err := s.activeCart(ctx, q, identity)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEmptyCart
			}
			return err
		}

		lines, err := q.ListCartLines(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		subtotal := decimal.Zero
		type pricedLine struct {
			product  domain.Product
			quantity int
		}
		priced := make([]pricedLine, 0, len(lines))

		// Lock each product row, re-check availability, and price the
		// line at the current product price rather than the cart's
		// snapshot.
		for _, line := range lines {
			product, err := q.GetProductForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive {
				return domain.Errorf(domain.ECONFLICT, op, "%s is no longer available", product.Name)
			}
			if product.StockQuantity < line.Quantity {
				return domain.Errorf(domain.ECONFLICT, op,
					"Only %d of %s in stock", product.StockQuantity, product.Name)
			}
			priced = append(priced, pricedLine{product: product, quantity: line.Quantity})
			subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		fee, err := s.shipping.Fee(subtotal)
		if err != nil {
			return err
		}

		order, err := q.CreateOrder(ctx, repository.CreateOrderParams{
			OrderNumber:   newOrderNumber(),
			UserID:        &userID,
			FullName:      input.FullName,
			Email:         input.Email,
			Address:       input.Address,
			PaymentMethod: input.PaymentMethod,
			Status:        domain.OrderStatusPending,
			Subtotal:      subtotal,
			ShippingFee:   fee,
			TotalAmount:   subtotal.Add(fee),
		})
		if err != nil {
			return err
		}

		items := make([]domain.OrderItem, 0, len(priced))
		for _, pl := range priced {
			item, err := q.CreateOrderItem(ctx, repository.CreateOrderItemParams{
				OrderID:   order.ID,
				ProductID: pl.product.ID,
				Quantity:  pl.quantity,
				UnitPrice: pl.product.Price,
			})
			if err != nil {
				return err
			}
			items = append(items, item)

			// Guarded decrement: a concurrent sale between lock and write
			// cannot drive stock negative.
			if err := q.DecrementProductStock(ctx, pl.product.ID, pl.quantity); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.Errorf(domain.ECONFLICT, op,
						"Only %d of %s in stock", pl.product.StockQuantity, pl.product.Name)
				}
				return err
			}

			_, err = q.CreateInventoryTransaction(ctx, repository.CreateInventoryTransactionParams{
				ProductID:      pl.product.ID,
				Type:           domain.TransactionSale,
				QuantityChange: -pl.quantity,
				StockBefore:    pl.product.StockQuantity,
				StockAfter:     pl.product.StockQuantity - pl.quantity,
				OrderID:        &order.ID,
				Note:           "Order " + order.OrderNumber,
			})
			if err != nil {
				return err
			}
		}

		// The cart stays active and empty so the buyer can keep shopping.
		if err := q.ClearCartItems(ctx, cart.ID); err != nil {
			return err
		}

		detail = domain.OrderDetail{Order: order, Items: items}
		return nil
	})
	if err != nil {
		switch domain.ErrorCode(err) {
		case domain.ECONFLICT:
			s.failed("insufficient_stock")
			if s.metrics != nil {
				s.metrics.OversellAborts.Inc()
			}
			return domain.OrderDetail{}, err
		case domain.EINVALID:
			s.failed("empty_cart")
			return domain.OrderDetail{}, err
		default:
			s.failed("internal")
			return domain.OrderDetail{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to place order")
		}
	}

	if s.metrics != nil {
		f, _ := detail.Order.Subtotal.Float64()
		s.metrics.CartValue.Observe(f)
		s.metrics.ObserveOrder(detail.Order.TotalAmount, len(detail.Items))
	}
	return detail, nil
}

func (s *checkoutService) failed(reason string) {
	if s.metrics != nil {
		s.metrics.CheckoutFailed.WithLabelValues(reason).Inc()
	}
}

// activeCart mirrors cartService.activeCart so checkout can run the lookup
// inside its own transaction.
func (s *checkoutService) activeCart(ctx context.Context, q repository.Querier, identity domain.Identity) (domain.Cart, error) {
	if identity.AccountID != nil {
		return q.GetActiveCartByUser(ctx, *identity.AccountID)
	}
	return q.GetActiveCartBySession(ctx, identity.SessionToken)
}

// newOrderNumber builds a buyer-facing order reference like
// PT-20260901-4F2A9C.
func newOrderNumber() string {
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("PT-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}

func checkoutFieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "max":
		return "Value is too long"
	default:
		return "Invalid value"
	}
}
