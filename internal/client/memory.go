package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"ec-service/internal/entity"
)

// Memory is an in-process source seeded with a product list. It mirrors
// the server's aggregate semantics closely enough that Store behaves
// identically against either backend, which is what makes it useful in
// tests and demos.
type Memory struct {
	// Latency, when set, delays every call to simulate a network hop.
	Latency time.Duration

	mu       sync.Mutex
	products map[string]*entity.Product
	accounts map[string]memoryAccount
	cart     *entity.Cart
	wishlist *entity.Wishlist
	nextID   int
}

type memoryAccount struct {
	user         *entity.User
	passwordHash []byte
}

func NewMemory(products []*entity.Product) *Memory {
	m := &Memory{
		products: make(map[string]*entity.Product),
		accounts: make(map[string]memoryAccount),
		cart:     &entity.Cart{ID: "cart-1"},
		wishlist: &entity.Wishlist{ID: "wishlist-1"},
	}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

// SeedUser registers an account without going through Register.
func (m *Memory) SeedUser(user *entity.User, password string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[strings.ToLower(user.Email)] = memoryAccount{user: user, passwordHash: hash}
}

func (m *Memory) id(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

func (m *Memory) delay() {
	if m.Latency > 0 {
		time.Sleep(m.Latency)
	}
}

func (m *Memory) Cart(ctx context.Context) (*entity.Cart, error) {
	m.delay()
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotCart(), nil
}

// snapshotCart copies the cart so callers never alias internal state.
func (m *Memory) snapshotCart() *entity.Cart {
	out := &entity.Cart{ID: m.cart.ID, UserID: m.cart.UserID}
	for _, item := range m.cart.Items {
		copied := *item
		out.Items = append(out.Items, &copied)
	}
	return out
}

func (m *Memory) AddToCart(ctx context.Context, productID string, quantity int) (*entity.CartItem, error) {
	m.delay()
	if quantity < 1 {
		return nil, entity.ErrInvalidQuantity
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	product, ok := m.products[productID]
	if !ok {
		return nil, entity.NotFound("product")
	}
	for _, item := range m.cart.Items {
		if item.ProductID == productID {
			item.Quantity += quantity
			copied := *item
			return &copied, nil
		}
	}
	item := &entity.CartItem{
		ID:        m.id("cart-item"),
		ProductID: productID,
		Quantity:  quantity,
		Product:   product,
	}
	m.cart.Items = append(m.cart.Items, item)
	copied := *item
	return &copied, nil
}

func (m *Memory) UpdateCartItem(ctx context.Context, itemID string, quantity int) (*entity.CartItem, error) {
	m.delay()
	if quantity < 1 {
		return nil, entity.ErrInvalidQuantity
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range m.cart.Items {
		if item.ID == itemID {
			item.Quantity = quantity
			copied := *item
			return &copied, nil
		}
	}
	return nil, entity.NotFound("cart item")
}

func (m *Memory) RemoveFromCart(ctx context.Context, itemID string) error {
	m.delay()
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, item := range m.cart.Items {
		if item.ID == itemID {
			m.cart.Items = append(m.cart.Items[:i], m.cart.Items[i+1:]...)
			return nil
		}
	}
	return entity.NotFound("cart item")
}

func (m *Memory) ClearCart(ctx context.Context) error {
	m.delay()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart.Items = nil
	return nil
}

func (m *Memory) Wishlist(ctx context.Context) (*entity.Wishlist, error) {
	m.delay()
	m.mu.Lock()
	defer m.mu.Unlock()

	out := &entity.Wishlist{ID: m.wishlist.ID, UserID: m.wishlist.UserID}
	for _, item := range m.wishlist.Items {
		copied := *item
		out.Items = append(out.Items, &copied)
	}
	return out, nil
}

func (m *Memory) AddToWishlist(ctx context.Context, productID string) (*entity.WishlistItem, error) {
	m.delay()
	m.mu.Lock()
	defer m.mu.Unlock()

	product, ok := m.products[productID]
	if !ok {
		return nil, entity.NotFound("product")
	}
	// Adding an already-listed product is a no-op, matching the server.
	for _, item := range m.wishlist.Items {
		if item.ProductID == productID {
			copied := *item
			return &copied, nil
		}
	}
	item := &entity.WishlistItem{
		ID:        m.id("wishlist-item"),
		ProductID: productID,
		Product:   product,
	}
	m.wishlist.Items = append(m.wishlist.Items, item)
	copied := *item
	return &copied, nil
}

func (m *Memory) RemoveFromWishlist(ctx context.Context, productID string) error {
	m.delay()
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, item := range m.wishlist.Items {
		if item.ProductID == productID {
			m.wishlist.Items = append(m.wishlist.Items[:i], m.wishlist.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *Memory) Register(ctx context.Context, email, password, firstName, lastName string) (*entity.AuthPayload, error) {
	m.delay()
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := m.accounts[key]; exists {
		return nil, entity.ErrEmailInUse
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:        m.id("user"),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      entity.RoleCustomer,
	}
	m.accounts[key] = memoryAccount{user: user, passwordHash: hash}
	return &entity.AuthPayload{Token: "memory-token-" + user.ID, User: user}, nil
}

func (m *Memory) Login(ctx context.Context, email, password string) (*entity.AuthPayload, error) {
	m.delay()
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[strings.ToLower(email)]
	if !ok {
		return nil, entity.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}
	return &entity.AuthPayload{Token: "memory-token-" + account.user.ID, User: account.user}, nil
}
