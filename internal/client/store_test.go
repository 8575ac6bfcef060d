package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ec-service/internal/entity"
)

func newTestStore() (*Store, *Memory, *MemoryKV) {
	source := NewMemory([]*entity.Product{
		{ID: "p1", Name: "Keyboard", Price: 50, Stock: 10},
		{ID: "p2", Name: "Mouse", Price: 20, Stock: 5},
	})
	kv := NewMemoryKV()
	store := NewStore(source, source, source, kv)
	return store, source, kv
}

func TestStoreCartFlow(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore()

	require.NoError(t, store.AddToCart(ctx, "p1", 2))
	require.NoError(t, store.AddToCart(ctx, "p2", 1))

	assert.Equal(t, 3, store.TotalItems())
	assert.InDelta(t, 120, store.Subtotal(), 1e-9)
	assert.Equal(t, "$120.00", store.SubtotalLabel())

	// Adding the same product again grows the existing line.
	require.NoError(t, store.AddToCart(ctx, "p1", 1))
	cart, err := store.Cart(ctx)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 4, store.TotalItems())

	require.NoError(t, store.ClearCart(ctx))
	assert.Equal(t, 0, store.TotalItems())
}

func TestStoreUpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore()

	require.NoError(t, store.AddToCart(ctx, "p1", 2))
	cart, err := store.Cart(ctx)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	require.NoError(t, store.UpdateCartItem(ctx, itemID, 5))
	assert.Equal(t, 5, store.TotalItems())

	err = store.UpdateCartItem(ctx, itemID, 0)
	assert.ErrorIs(t, err, entity.ErrInvalidQuantity)

	require.NoError(t, store.RemoveFromCart(ctx, itemID))
	assert.Equal(t, 0, store.TotalItems())
}

func TestStoreWishlistMembership(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore()

	assert.False(t, store.IsInWishlist("p1"))

	require.NoError(t, store.AddToWishlist(ctx, "p1"))
	assert.True(t, store.IsInWishlist("p1"))
	assert.False(t, store.IsInWishlist("p2"))

	// A duplicate add leaves a single entry.
	require.NoError(t, store.AddToWishlist(ctx, "p1"))
	wishlist, err := store.Wishlist(ctx)
	require.NoError(t, err)
	assert.Len(t, wishlist.Items, 1)

	require.NoError(t, store.RemoveFromWishlist(ctx, "p1"))
	assert.False(t, store.IsInWishlist("p1"))
}

func TestStoreAuthSession(t *testing.T) {
	ctx := context.Background()
	store, _, kv := newTestStore()

	user, err := store.Register(ctx, "jane@example.com", "hunter22", "Jane", "Doe")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, user.Role)
	assert.NotEmpty(t, store.Token())

	_, err = store.Register(ctx, "jane@example.com", "other", "Jane", "Doe")
	assert.ErrorIs(t, err, entity.ErrEmailInUse)

	_, err = store.Login(ctx, "jane@example.com", "wrong")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	logged, err := store.Login(ctx, "jane@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	store.Logout()
	assert.Nil(t, store.User())
	assert.Empty(t, store.Token())
	_, ok := kv.Get(kvTokenKey)
	assert.False(t, ok)
}

func TestStoreRestoresPersistedSession(t *testing.T) {
	ctx := context.Background()
	source := NewMemory([]*entity.Product{{ID: "p1", Name: "Keyboard", Price: 50}})
	kv := NewMemoryKV()

	first := NewStore(source, source, source, kv)
	_, err := first.Register(ctx, "jane@example.com", "hunter22", "Jane", "Doe")
	require.NoError(t, err)
	require.NoError(t, first.AddToWishlist(ctx, "p1"))

	// A second store over the same KV picks up the session cold.
	second := NewStore(source, source, source, kv)
	require.NotNil(t, second.User())
	assert.Equal(t, "jane@example.com", second.User().Email)
	assert.Equal(t, first.Token(), second.Token())
	assert.True(t, second.IsInWishlist("p1"))
}
