package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plushmarket/storefront/internal/model"
)

func seedOrder(orders *mockOrderClient, caller string) int64 {
	id, _ := orders.CreateOrder(context.Background(), caller, "1 Plush Way",
		[]model.CartLine{{ProductID: 1, Quantity: 1, Variant: "default"}}, 999)
	return id
}

func TestOrderGet_OwnerSeesOwnOrder(t *testing.T) {
	orders := newMockOrderClient()
	id := seedOrder(orders, "buyer-1")
	svc := NewOrderService(orders)

	order, err := svc.Get(context.Background(), buyer(), id)

	require.NoError(t, err)
	assert.Equal(t, "buyer-1", order.UserID)
	assert.Equal(t, int64(999), order.Total)
}

func TestOrderGet_DeniesForeignOrder(t *testing.T) {
	orders := newMockOrderClient()
	id := seedOrder(orders, "buyer-2")
	svc := NewOrderService(orders)

	_, err := svc.Get(context.Background(), buyer(), id)

	assert.True(t, errors.Is(err, ErrOrderAccessDenied))
}

func TestOrderGet_AdminSeesAnyOrder(t *testing.T) {
	orders := newMockOrderClient()
	id := seedOrder(orders, "buyer-2")
	svc := NewOrderService(orders)

	order, err := svc.Get(context.Background(), admin(), id)

	require.NoError(t, err)
	assert.Equal(t, "buyer-2", order.UserID)
}

func TestOrderGet_NotFound(t *testing.T) {
	svc := NewOrderService(newMockOrderClient())

	_, err := svc.Get(context.Background(), buyer(), 404)

	assert.True(t, errors.Is(err, ErrOrderNotFound))
}

func TestOrderListMine(t *testing.T) {
	orders := newMockOrderClient()
	seedOrder(orders, "buyer-1")
	seedOrder(orders, "buyer-2")
	svc := NewOrderService(orders)

	mine, err := svc.ListMine(context.Background(), buyer())

	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "buyer-1", mine[0].UserID)
}

func TestOrderListAll_RequiresAdmin(t *testing.T) {
	svc := NewOrderService(newMockOrderClient())

	_, err := svc.ListAll(context.Background(), buyer())

	assert.True(t, errors.Is(err, ErrNotAuthorized))
}

func TestOrderUpdateStatus_RequiresAdmin(t *testing.T) {
	orders := newMockOrderClient()
	id := seedOrder(orders, "buyer-1")
	svc := NewOrderService(orders)

	err := svc.UpdateStatus(context.Background(), buyer(), id, "shipped")

	assert.True(t, errors.Is(err, ErrNotAuthorized))
	assert.Empty(t, orders.statuses)
}

func TestOrderUpdateStatus(t *testing.T) {
	orders := newMockOrderClient()
	id := seedOrder(orders, "buyer-1")
	svc := NewOrderService(orders)

	err := svc.UpdateStatus(context.Background(), admin(), id, "shipped")

	require.NoError(t, err)
	assert.Equal(t, "shipped", orders.statuses[id])
}
