package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ec-service/internal/entity"
)

func newTestCartService() (*CartService, *entity.User, *fakeProductRepo) {
	products := newFakeProductRepo(
		&entity.Product{ID: "p1", Name: "Keyboard", Price: 49.99, Stock: 10},
		&entity.Product{ID: "p2", Name: "Mouse", Price: 19.99, Stock: 5},
	)
	carts := newFakeCartRepo(products)
	user := &entity.User{ID: "u1", Role: entity.RoleCustomer}
	carts.addCart(user.ID)
	return NewCartService(carts, products), user, products
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	ctx := context.Background()
	svc, user, _ := newTestCartService()

	cart, err := svc.AddItem(ctx, user, "p1", 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	// Adding the same product again grows the line, not the cart.
	cart, err = svc.AddItem(ctx, user, "p1", 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.TotalItems())
}

func TestAddItemValidation(t *testing.T) {
	ctx := context.Background()
	svc, user, _ := newTestCartService()

	_, err := svc.AddItem(ctx, user, "p1", 0)
	assert.ErrorIs(t, err, entity.ErrInvalidQuantity)

	_, err = svc.AddItem(ctx, user, "missing", 1)
	require.Error(t, err)
	assert.True(t, entity.IsNotFound(err))

	_, err = svc.AddItem(ctx, nil, "p1", 1)
	assert.ErrorIs(t, err, entity.ErrNotAuthenticated)
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	svc, user, _ := newTestCartService()

	cart, err := svc.AddItem(ctx, user, "p1", 2)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateItem(ctx, user, itemID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	// Quantity below one is rejected, not treated as a remove.
	_, err = svc.UpdateItem(ctx, user, itemID, 0)
	assert.ErrorIs(t, err, entity.ErrInvalidQuantity)

	_, err = svc.UpdateItem(ctx, user, "missing", 1)
	assert.True(t, entity.IsNotFound(err))
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	svc, user, _ := newTestCartService()

	cart, err := svc.AddItem(ctx, user, "p1", 1)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.RemoveItem(ctx, user, itemID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.RemoveItem(ctx, user, itemID)
	assert.True(t, entity.IsNotFound(err))
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	svc, user, _ := newTestCartService()

	_, err := svc.AddItem(ctx, user, "p1", 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, user, "p2", 1)
	require.NoError(t, err)

	cart, err := svc.Clear(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Clearing an already empty cart succeeds.
	cart, err = svc.Clear(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartSubtotalTracksLivePrices(t *testing.T) {
	ctx := context.Background()
	svc, user, products := newTestCartService()

	cart, err := svc.AddItem(ctx, user, "p1", 2)
	require.NoError(t, err)
	assert.InDelta(t, 99.98, cart.Subtotal(), 1e-9)

	products.products["p1"].Price = 60

	cart, err = svc.Cart(ctx, user)
	require.NoError(t, err)
	assert.InDelta(t, 120, cart.Subtotal(), 1e-9)
}
