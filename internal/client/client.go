// Package client holds the storefront's client-side state mirrors: an
// in-memory cache of cart, wishlist and auth state backed by a
// pluggable data source. The source is chosen once at composition time
// (in-memory fake or network GraphQL client), never per call.
package client

import (
	"context"

	"ec-service/internal/entity"
)

// CartSource is the remote surface of the cart aggregate.
type CartSource interface {
	Cart(ctx context.Context) (*entity.Cart, error)
	AddToCart(ctx context.Context, productID string, quantity int) (*entity.CartItem, error)
	UpdateCartItem(ctx context.Context, itemID string, quantity int) (*entity.CartItem, error)
	RemoveFromCart(ctx context.Context, itemID string) error
	ClearCart(ctx context.Context) error
}

// WishlistSource is the remote surface of the wishlist aggregate.
type WishlistSource interface {
	Wishlist(ctx context.Context) (*entity.Wishlist, error)
	AddToWishlist(ctx context.Context, productID string) (*entity.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, productID string) error
}

// AuthSource is the remote surface of registration and login.
type AuthSource interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*entity.AuthPayload, error)
	Login(ctx context.Context, email, password string) (*entity.AuthPayload, error)
}

// KV is the durable local store surviving restarts (the browser
// localStorage analog). Only token, user and wishlist membership are
// persisted; everything else is refetched.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}
