package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/repository"
	"github.com/papertrail/storefront/internal/telemetry"
)

// CartService provides business logic for shopping cart operations.
// Every method takes the caller's identity so ownership checks happen
// here, not in the handlers.
type CartService interface {
	// ResolveActiveCart finds the identity's active cart, creating one on
	// first use.
	ResolveActiveCart(ctx context.Context, identity domain.Identity) (domain.Cart, error)

	// AddLine adds quantity of a product to the identity's cart. Adding a
	// product already in the cart sums quantities and keeps the original
	// price snapshot.
	AddLine(ctx context.Context, identity domain.Identity, productID int64, quantity int) (domain.CartSummary, error)

	// SetLineQuantity changes a line's quantity, removing the line at zero.
	// Lines belonging to another identity's cart are silently ignored.
	SetLineQuantity(ctx context.Context, identity domain.Identity, itemID int64, quantity int) (domain.CartSummary, error)

	// RemoveLine deletes a line. Lines belonging to another identity's
	// cart are silently ignored.
	RemoveLine(ctx context.Context, identity domain.Identity, itemID int64) (domain.CartSummary, error)

	// Summary returns the cart with its lines and derived totals.
	Summary(ctx context.Context, identity domain.Identity) (domain.CartSummary, error)

	// MergeOnLogin folds the session's anonymous cart into the account
	// cart. Quantities for shared products are summed and the account
	// cart's price snapshot wins; the anonymous cart is deactivated. All
	// of it happens in one transaction.
	MergeOnLogin(ctx context.Context, sessionToken string, userID int64) error
}

type cartService struct {
	store   repository.Store
	metrics *telemetry.BusinessMetrics
}

// NewCartService creates a new CartService instance.
func NewCartService(store repository.Store, metrics *telemetry.BusinessMetrics) CartService {
	return &cartService{store: store, metrics: metrics}
}

func (s *cartService) ResolveActiveCart(ctx context.Context, identity domain.Identity) (domain.Cart, error) {
	const op = "cart.resolve"

	if !identity.Valid() {
		return domain.Cart{}, ErrInvalidIdentity
	}

	cart, err := s.activeCart(ctx, s.store, identity)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.Cart{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load cart")
	}

	params := repository.CreateCartParams{UserID: identity.AccountID}
	if identity.AccountID == nil {
		token := identity.SessionToken
		params.SessionToken = &token
	}

	cart, err = s.store.CreateCart(ctx, params)
	if err != nil {
		// A concurrent request may have created the cart first; the partial
		// unique index turns that race into a unique violation.
		if repository.IsUniqueViolation(err) {
			cart, err = s.activeCart(ctx, s.store, identity)
			if err == nil {
				return cart, nil
			}
		}
		return domain.Cart{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to create cart")
	}

	if s.metrics != nil {
		s.metrics.CartCreated.Inc()
	}
	return cart, nil
}

// activeCart looks up the identity's active cart on the given querier so
// it works both on the pool and inside a transaction.
func (s *cartService) activeCart(ctx context.Context, q repository.Querier, identity domain.Identity) (domain.Cart, error) {
	if identity.AccountID != nil {
		return q.GetActiveCartByUser(ctx, *identity.AccountID)
	}
	return q.GetActiveCartBySession(ctx, identity.SessionToken)
}

func (s *cartService) AddLine(ctx context.Context, identity domain.Identity, productID int64, quantity int) (domain.CartSummary, error) {
	const op = "cart.add"

	if quantity <= 0 {
		return domain.CartSummary{}, ErrInvalidQuantity
	}

	product, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.CartSummary{}, ErrProductNotFound
		}
		return domain.CartSummary{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load product")
	}
	if !product.IsActive {
		return domain.CartSummary{}, ErrProductDiscontinued
	}

	cart, err := s.ResolveActiveCart(ctx, identity)
	if err != nil {
		return domain.CartSummary{}, err
	}

	// The upsert snapshots the current price on first add; later adds of
	// the same product keep the original snapshot.
	_, err = s.store.UpsertCartItem(ctx, repository.UpsertCartItemParams{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
	})
	if err != nil {
		return domain.CartSummary{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to add to cart")
	}

	if s.metrics != nil {
		s.metrics.CartItemsAdd.WithLabelValues(string(product.Category)).Inc()
	}

	return s.summarize(ctx, s.store, cart)
}

func (s *cartService) SetLineQuantity(ctx context.Context, identity domain.Identity, itemID int64, quantity int) (domain.CartSummary, error) {
	const op = "cart.update"

	cart, err := s.ResolveActiveCart(ctx, identity)
	if err != nil {
		return domain.CartSummary{}, err
	}

	item, err := s.store.GetCartItemByID(ctx, itemID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return domain.CartSummary{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load cart item")
	}

	// Unknown lines and lines in someone else's cart get the same silent
	// treatment so the response leaks nothing about other carts.
	if err == nil && item.CartID == cart.ID {
		if quantity <= 0 {
			err = s.store.DeleteCartItem(ctx, itemID)
		} else {
			err = s.store.SetCartItemQuantity(ctx, itemID, quantity)
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return domain.CartSummary{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to update cart item")
		}
	}

	return s.summarize(ctx, s.store, cart)
}

func (s *cartService) RemoveLine(ctx context.Context, identity domain.Identity, itemID int64) (domain.CartSummary, error) {
	const op = "cart.remove"

	cart, err := s.ResolveActiveCart(ctx, identity)
	if err != nil {
		return domain.CartSummary{}, err
	}

	item, err := s.store.GetCartItemByID(ctx, itemID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return domain.CartSummary{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load cart item")
	}

	if err == nil && item.CartID == cart.ID {
		if err := s.store.DeleteCartItem(ctx, itemID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return domain.CartSummary{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to remove cart item")
		}
	}

	return s.summarize(ctx, s.store, cart)
}

func (s *cartService) Summary(ctx context.Context, identity domain.Identity) (domain.CartSummary, error) {
	cart, err := s.ResolveActiveCart(ctx, identity)
	if err != nil {
		return domain.CartSummary{}, err
	}
	return s.summarize(ctx, s.store, cart)
}

func (s *cartService) summarize(ctx context.Context, q repository.Querier, cart domain.Cart) (domain.CartSummary, error) {
	const op = "cart.summary"

	lines, err := q.ListCartLines(ctx, cart.ID)
	if err != nil {
		return domain.CartSummary{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load cart lines")
	}

	summary := domain.CartSummary{Cart: cart, Lines: lines, Subtotal: decimal.Zero}
	for _, line := range lines {
		summary.ItemCount += line.Quantity
		summary.Subtotal = summary.Subtotal.Add(line.LineTotal())
	}
	return summary, nil
}

func (s *cartService) MergeOnLogin(ctx context.Context, sessionToken string, userID int64) error {
	const op = "cart.merge"

	if sessionToken == "" {
		return nil
	}

	merged := false
	err := s.store.WithTx(ctx, func(q repository.Querier) error {
		anon, err := q.GetActiveCartBySession(ctx, sessionToken)
		if errors.Is(err, repository.ErrNotFound) {
			return nil // nothing to merge
		}
		if err != nil {
			return err
		}

		items, err := q.ListCartItems(ctx, anon.ID)
		if err != nil {
			return err
		}

		if len(items) > 0 {
			account, err := q.GetActiveCartByUser(ctx, userID)
			if errors.Is(err, repository.ErrNotFound) {
				account, err = q.CreateCart(ctx, repository.CreateCartParams{UserID: &userID})
			}
			if err != nil {
				return err
			}

			// The upsert sums quantities for shared products and keeps the
			// account cart's existing price snapshot; new products carry
			// their anonymous snapshot across.
			for _, item := range items {
				_, err := q.UpsertCartItem(ctx, repository.UpsertCartItemParams{
					CartID:    account.ID,
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
					UnitPrice: item.UnitPrice,
				})
				if err != nil {
					return err
				}
			}
			merged = true
		}

		return q.DeactivateCart(ctx, anon.ID)
	})
	if err != nil {
		return domain.WrapError(err, domain.EINTERNAL, op, "Unable to merge carts")
	}

	if merged && s.metrics != nil {
		s.metrics.CartsMerged.Inc()
	}
	return nil
}
