package client

import (
	"context"
	"encoding/json"
	"sync"

	"ec-service/internal/entity"
	"ec-service/internal/format"
)

const (
	kvTokenKey    = "auth.token"
	kvUserKey     = "auth.user"
	kvWishlistKey = "wishlist.items"
)

type tokenSetter interface {
	SetToken(token string)
}

// Store caches cart, wishlist and auth state on top of the configured
// sources. After every mutation the affected aggregate is refetched in
// full instead of patched locally, so the cache can never drift from
// the server under concurrent sessions.
type Store struct {
	carts     CartSource
	wishlists WishlistSource
	auth      AuthSource
	kv        KV

	mu       sync.RWMutex
	token    string
	user     *entity.User
	cart     *entity.Cart
	wishlist *entity.Wishlist
}

func NewStore(carts CartSource, wishlists WishlistSource, auth AuthSource, kv KV) *Store {
	s := &Store{carts: carts, wishlists: wishlists, auth: auth, kv: kv}
	s.restore()
	return s
}

// restore reloads the persisted session so a returning user stays
// logged in with their wishlist membership intact.
func (s *Store) restore() {
	if token, ok := s.kv.Get(kvTokenKey); ok {
		s.token = token
		s.propagateToken(token)
	}
	if raw, ok := s.kv.Get(kvUserKey); ok {
		var u entity.User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			s.user = &u
		}
	}
	if raw, ok := s.kv.Get(kvWishlistKey); ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err == nil {
			w := &entity.Wishlist{}
			for _, id := range ids {
				w.Items = append(w.Items, &entity.WishlistItem{ProductID: id})
			}
			s.wishlist = w
		}
	}
}

func (s *Store) propagateToken(token string) {
	for _, src := range []interface{}{s.carts, s.wishlists, s.auth} {
		if ts, ok := src.(tokenSetter); ok {
			ts.SetToken(token)
		}
	}
}

// User returns the cached authenticated user, nil when anonymous.
func (s *Store) User() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Token returns the cached bearer token, empty when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) setSession(payload *entity.AuthPayload) {
	s.mu.Lock()
	s.token = payload.Token
	s.user = payload.User
	s.mu.Unlock()

	s.propagateToken(payload.Token)
	s.kv.Set(kvTokenKey, payload.Token)
	if raw, err := json.Marshal(payload.User); err == nil {
		s.kv.Set(kvUserKey, string(raw))
	}
}

func (s *Store) Register(ctx context.Context, email, password, firstName, lastName string) (*entity.User, error) {
	payload, err := s.auth.Register(ctx, email, password, firstName, lastName)
	if err != nil {
		return nil, err
	}
	s.setSession(payload)
	return payload.User, nil
}

func (s *Store) Login(ctx context.Context, email, password string) (*entity.User, error) {
	payload, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.setSession(payload)
	return payload.User, nil
}

// Logout drops the session and every per-user cache.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.cart = nil
	s.wishlist = nil
	s.mu.Unlock()

	s.propagateToken("")
	s.kv.Delete(kvTokenKey)
	s.kv.Delete(kvUserKey)
	s.kv.Delete(kvWishlistKey)
}

// Cart returns the cached cart, fetching it on first use.
func (s *Store) Cart(ctx context.Context) (*entity.Cart, error) {
	s.mu.RLock()
	cached := s.cart
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	return s.RefreshCart(ctx)
}

func (s *Store) RefreshCart(ctx context.Context) (*entity.Cart, error) {
	cart, err := s.carts.Cart(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
	return cart, nil
}

func (s *Store) AddToCart(ctx context.Context, productID string, quantity int) error {
	if _, err := s.carts.AddToCart(ctx, productID, quantity); err != nil {
		return err
	}
	_, err := s.RefreshCart(ctx)
	return err
}

func (s *Store) UpdateCartItem(ctx context.Context, itemID string, quantity int) error {
	if _, err := s.carts.UpdateCartItem(ctx, itemID, quantity); err != nil {
		return err
	}
	_, err := s.RefreshCart(ctx)
	return err
}

func (s *Store) RemoveFromCart(ctx context.Context, itemID string) error {
	if err := s.carts.RemoveFromCart(ctx, itemID); err != nil {
		return err
	}
	_, err := s.RefreshCart(ctx)
	return err
}

func (s *Store) ClearCart(ctx context.Context) error {
	if err := s.carts.ClearCart(ctx); err != nil {
		return err
	}
	_, err := s.RefreshCart(ctx)
	return err
}

// TotalItems sums quantities across the cached cart.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return 0
	}
	return s.cart.TotalItems()
}

// Subtotal sums price*quantity across the cached cart at live prices.
func (s *Store) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return 0
	}
	return s.cart.Subtotal()
}

// SubtotalLabel renders the cached subtotal for display.
func (s *Store) SubtotalLabel() string {
	return format.Price(s.Subtotal())
}

// Wishlist returns the cached wishlist, fetching it on first use.
func (s *Store) Wishlist(ctx context.Context) (*entity.Wishlist, error) {
	s.mu.RLock()
	cached := s.wishlist
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	return s.RefreshWishlist(ctx)
}

func (s *Store) RefreshWishlist(ctx context.Context) (*entity.Wishlist, error) {
	wishlist, err := s.wishlists.Wishlist(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.wishlist = wishlist
	s.mu.Unlock()
	s.persistWishlist(wishlist)
	return wishlist, nil
}

func (s *Store) persistWishlist(w *entity.Wishlist) {
	ids := make([]string, 0, len(w.Items))
	for _, item := range w.Items {
		ids = append(ids, item.ProductID)
	}
	if raw, err := json.Marshal(ids); err == nil {
		s.kv.Set(kvWishlistKey, string(raw))
	}
}

func (s *Store) AddToWishlist(ctx context.Context, productID string) error {
	if _, err := s.wishlists.AddToWishlist(ctx, productID); err != nil {
		return err
	}
	_, err := s.RefreshWishlist(ctx)
	return err
}

func (s *Store) RemoveFromWishlist(ctx context.Context, productID string) error {
	if err := s.wishlists.RemoveFromWishlist(ctx, productID); err != nil {
		return err
	}
	_, err := s.RefreshWishlist(ctx)
	return err
}

// IsInWishlist answers from the cache so product listings can badge
// hearts without a round trip per card.
func (s *Store) IsInWishlist(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.wishlist == nil {
		return false
	}
	return s.wishlist.Has(productID)
}
