package service

import (
	"context"
	"errors"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/repository"
)

// OrderService exposes order history to buyers and status management to
// admins.
type OrderService interface {
	// ListForUser returns the user's orders, newest first.
	ListForUser(ctx context.Context, userID int64) ([]domain.Order, error)

	// GetForUser loads one order with its items. Orders belonging to
	// other users come back as not found.
	GetForUser(ctx context.Context, userID int64, orderNumber string) (domain.OrderDetail, error)

	// UpdateStatus moves an order to a new status (admin only).
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
}

type orderService struct {
	store repository.Store
}

// NewOrderService creates an OrderService.
func NewOrderService(store repository.Store) OrderService {
	return &orderService{store: store}
}

func (s *orderService) ListForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	const op = "order.list"

	orders, err := s.store.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load orders")
	}
	return orders, nil
}

func (s *orderService) GetForUser(ctx context.Context, userID int64, orderNumber string) (domain.OrderDetail, error) {
	const op = "order.get"

	order, err := s.store.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.OrderDetail{}, ErrOrderNotFound
		}
		return domain.OrderDetail{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load order")
	}

	// Another user's order is indistinguishable from a missing one.
	if order.UserID == nil || *order.UserID != userID {
		return domain.OrderDetail{}, ErrOrderNotFound
	}

	items, err := s.store.ListOrderItems(ctx, order.ID)
	if err != nil {
		return domain.OrderDetail{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load order items")
	}

	return domain.OrderDetail{Order: order, Items: items}, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	const op = "order.status"

	if !status.Valid() {
		return ErrInvalidStatusChange
	}

	if err := s.store.UpdateOrderStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOrderNotFound
		}
		return domain.WrapError(err, domain.EINTERNAL, op, "Unable to update order status")
	}
	return nil
}
