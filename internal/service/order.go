package service

import (
	"context"
	"fmt"

	"github.com/plushmarket/storefront/internal/model"
	"github.com/plushmarket/storefront/internal/store"
)

// OrderService exposes order reads and the staff-only fulfillment update.
// Orders themselves are created only by the checkout orchestrator.
type OrderService struct {
	orders store.OrderClient
}

func NewOrderService(orders store.OrderClient) *OrderService {
	return &OrderService{orders: orders}
}

func (s *OrderService) Get(ctx context.Context, sess Session, orderID int64) (*model.Order, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	order, err := s.orders.GetOrder(ctx, sess.Caller, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != sess.Caller && !sess.IsAdmin() {
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, sess Session) ([]model.Order, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	orders, err := s.orders.ListMyOrders(ctx, sess.Caller)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) ListAll(ctx context.Context, sess Session) ([]model.Order, error) {
	if !sess.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	orders, err := s.orders.ListAllOrders(ctx, sess.Caller)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, sess Session, orderID int64, status string) error {
	if !sess.IsAdmin() {
		return ErrNotAuthorized
	}
	if err := s.orders.UpdateOrderStatus(ctx, sess.Caller, orderID, status); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}
