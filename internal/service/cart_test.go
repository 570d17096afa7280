package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plushmarket/storefront/internal/model"
)

func newCartFixture() (*CartService, *mockCartClient, *mockCatalogClient) {
	carts := newMockCartClient()
	catalog := newMockCatalogClient()
	svc := NewCartService(carts, NewCatalogService(catalog, nil), nil)
	return svc, carts, catalog
}

func TestAggregate_TotalIsSumOfLineTotals(t *testing.T) {
	products := []model.Product{
		{ID: 1, Name: "Plush Bear", Price: 999},
		{ID: 2, Name: "Plush Fox", Price: 1500},
	}
	lines := []model.CartLine{
		{ProductID: 1, Quantity: 2, Variant: "default"},
		{ProductID: 2, Quantity: 1, Variant: "default"},
	}

	priced, total := Aggregate(lines, products)

	require.Len(t, priced, 2)
	assert.Equal(t, int64(1998), priced[0].LineTotal)
	assert.Equal(t, int64(1500), priced[1].LineTotal)
	assert.Equal(t, int64(3498), total)
}

func TestAggregate_EmptyCart(t *testing.T) {
	priced, total := Aggregate(nil, []model.Product{{ID: 1, Price: 999}})

	assert.Empty(t, priced)
	assert.Equal(t, int64(0), total)
}

func TestAggregate_MergesDuplicateLines(t *testing.T) {
	products := []model.Product{{ID: 1, Name: "Plush Bear", Price: 999}}
	lines := []model.CartLine{
		{ProductID: 1, Quantity: 2, Variant: "default"},
		{ProductID: 1, Quantity: 1, Variant: "default"},
	}

	priced, total := Aggregate(lines, products)

	require.Len(t, priced, 1)
	assert.Equal(t, int64(3), priced[0].Quantity)
	assert.Equal(t, int64(2997), priced[0].LineTotal)
	assert.Equal(t, int64(2997), total)
}

func TestAggregate_VariantsStaySeparate(t *testing.T) {
	products := []model.Product{{ID: 1, Name: "Plush Bear", Price: 999}}
	lines := []model.CartLine{
		{ProductID: 1, Quantity: 1, Variant: "small"},
		{ProductID: 1, Quantity: 1, Variant: "large"},
	}

	priced, _ := Aggregate(lines, products)

	assert.Len(t, priced, 2)
}

func TestAggregate_DropsStaleLines(t *testing.T) {
	products := []model.Product{{ID: 1, Name: "Plush Bear", Price: 999}}
	lines := []model.CartLine{
		{ProductID: 1, Quantity: 1, Variant: "default"},
		{ProductID: 42, Quantity: 5, Variant: "default"},
	}

	priced, total := Aggregate(lines, products)

	require.Len(t, priced, 1)
	assert.Equal(t, int64(1), priced[0].ProductID)
	assert.Equal(t, int64(999), total)
}

func TestCartGet_RequiresAuthentication(t *testing.T) {
	svc, _, _ := newCartFixture()

	_, _, err := svc.Get(context.Background(), Session{Role: model.RoleGuest})

	assert.True(t, errors.Is(err, ErrNotAuthenticated))
}

func TestCartAddLine_RejectsNonPositiveQuantity(t *testing.T) {
	svc, carts, _ := newCartFixture()
	sess := Session{Caller: "buyer-1", Role: model.RoleUser}

	err := svc.AddLine(context.Background(), sess, model.CartLine{ProductID: 1, Quantity: 0})

	assert.True(t, errors.Is(err, ErrInvalidQuantity))
	assert.Empty(t, carts.carts["buyer-1"])
}

func TestCartAddLine_DefaultsVariant(t *testing.T) {
	svc, carts, _ := newCartFixture()
	sess := Session{Caller: "buyer-1", Role: model.RoleUser}

	err := svc.AddLine(context.Background(), sess, model.CartLine{ProductID: 1, Quantity: 1})

	require.NoError(t, err)
	require.Len(t, carts.carts["buyer-1"], 1)
	assert.Equal(t, "default", carts.carts["buyer-1"][0].Variant)
}

func TestCartGet_PricedAgainstCatalog(t *testing.T) {
	svc, carts, catalog := newCartFixture()
	catalog.put(model.Product{ID: 1, Name: "Plush Bear", Price: 999})
	sess := Session{Caller: "buyer-1", Role: model.RoleUser}
	carts.carts["buyer-1"] = []model.CartLine{{ProductID: 1, Quantity: 2, Variant: "default"}}

	priced, total, err := svc.Get(context.Background(), sess)

	require.NoError(t, err)
	require.Len(t, priced, 1)
	assert.Equal(t, "Plush Bear", priced[0].Product.Name)
	assert.Equal(t, int64(1998), total)
}

func TestCartRemoveLine(t *testing.T) {
	svc, carts, _ := newCartFixture()
	sess := Session{Caller: "buyer-1", Role: model.RoleUser}
	carts.carts["buyer-1"] = []model.CartLine{
		{ProductID: 1, Quantity: 1, Variant: "default"},
		{ProductID: 2, Quantity: 1, Variant: "default"},
	}

	err := svc.RemoveLine(context.Background(), sess, 1)

	require.NoError(t, err)
	require.Len(t, carts.carts["buyer-1"], 1)
	assert.Equal(t, int64(2), carts.carts["buyer-1"][0].ProductID)
}
