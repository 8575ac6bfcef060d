package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ec-service/internal/entity"
)

func newTestWishlistService() (*WishlistService, *entity.User) {
	products := newFakeProductRepo(
		&entity.Product{ID: "p1", Name: "Keyboard", Price: 49.99},
	)
	wishlists := newFakeWishlistRepo(products)
	user := &entity.User{ID: "u1", Role: entity.RoleCustomer}
	wishlists.addWishlist(user.ID)
	return NewWishlistService(wishlists, products), user
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, user := newTestWishlistService()

	wishlist, err := svc.Add(ctx, user, "p1")
	require.NoError(t, err)
	require.Len(t, wishlist.Items, 1)

	wishlist, err = svc.Add(ctx, user, "p1")
	require.NoError(t, err)
	assert.Len(t, wishlist.Items, 1)
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	ctx := context.Background()
	svc, user := newTestWishlistService()

	_, err := svc.Add(ctx, user, "missing")
	assert.True(t, entity.IsNotFound(err))
}

func TestWishlistRemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, user := newTestWishlistService()

	wishlist, err := svc.Remove(ctx, user, "p1")
	require.NoError(t, err)
	assert.Empty(t, wishlist.Items)
}

func TestWishlistMembership(t *testing.T) {
	ctx := context.Background()
	svc, user := newTestWishlistService()

	ok, err := svc.IsMember(ctx, user, "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Add(ctx, user, "p1")
	require.NoError(t, err)

	ok, err = svc.IsMember(ctx, user, "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Remove(ctx, user, "p1")
	require.NoError(t, err)

	ok, err = svc.IsMember(ctx, user, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWishlistRequiresUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestWishlistService()

	_, err := svc.Wishlist(ctx, nil)
	assert.ErrorIs(t, err, entity.ErrNotAuthenticated)
	_, err = svc.Add(ctx, nil, "p1")
	assert.ErrorIs(t, err, entity.ErrNotAuthenticated)
}
