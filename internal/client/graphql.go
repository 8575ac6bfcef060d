package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"ec-service/internal/entity"
)

// GraphQL talks to a storefront server over its /graphql endpoint. One
// instance serves as CartSource, WishlistSource and AuthSource at once
// so the bearer token is shared.
type GraphQL struct {
	endpoint string
	http     *http.Client

	mu    sync.RWMutex
	token string
}

func NewGraphQL(endpoint string) *GraphQL {
	return &GraphQL{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *GraphQL) SetToken(token string) {
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
}

type gqlError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions"`
}

// toEntityError recovers the server's error taxonomy from the
// extensions block so callers can branch on codes client-side too.
func (e gqlError) toEntityError() error {
	if code, ok := e.Extensions["code"].(string); ok {
		return &entity.Error{Code: code, Message: e.Message}
	}
	return &entity.Error{Code: "INTERNAL", Message: e.Message}
}

func (g *GraphQL) do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	g.mu.RLock()
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	g.mu.RUnlock()

	resp, err := g.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("graphql: unexpected status %d", resp.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []gqlError      `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}
	if len(envelope.Errors) > 0 {
		return envelope.Errors[0].toEntityError()
	}
	if out != nil {
		return json.Unmarshal(envelope.Data, out)
	}
	return nil
}

// Wire DTOs carry the camelCase field names of the GraphQL responses
// before conversion into entities.

type userDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func (d userDTO) entity() *entity.User {
	return &entity.User{
		ID:        d.ID,
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Role:      entity.Role(d.Role),
	}
}

type productDTO struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Price  float64  `json:"price"`
	Stock  int      `json:"stock"`
	Images []string `json:"images"`
}

func (d productDTO) entity() *entity.Product {
	return &entity.Product{ID: d.ID, Name: d.Name, Price: d.Price, Stock: d.Stock, Images: d.Images}
}

type cartItemDTO struct {
	ID       string     `json:"id"`
	Quantity int        `json:"quantity"`
	Product  productDTO `json:"product"`
}

func (d cartItemDTO) entity() *entity.CartItem {
	return &entity.CartItem{ID: d.ID, ProductID: d.Product.ID, Quantity: d.Quantity, Product: d.Product.entity()}
}

type cartDTO struct {
	ID    string        `json:"id"`
	Items []cartItemDTO `json:"items"`
}

func (d cartDTO) entity() *entity.Cart {
	cart := &entity.Cart{ID: d.ID}
	for _, item := range d.Items {
		cart.Items = append(cart.Items, item.entity())
	}
	return cart
}

type wishlistItemDTO struct {
	ID      string     `json:"id"`
	Product productDTO `json:"product"`
}

type wishlistDTO struct {
	ID    string            `json:"id"`
	Items []wishlistItemDTO `json:"items"`
}

func (d wishlistDTO) entity() *entity.Wishlist {
	wishlist := &entity.Wishlist{ID: d.ID}
	for _, item := range d.Items {
		wishlist.Items = append(wishlist.Items, &entity.WishlistItem{
			ID:        item.ID,
			ProductID: item.Product.ID,
			Product:   item.Product.entity(),
		})
	}
	return wishlist
}

type authDTO struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

func (d authDTO) entity() *entity.AuthPayload {
	return &entity.AuthPayload{Token: d.Token, User: d.User.entity()}
}

const cartFields = `id items { id quantity product { id name price stock images } }`

func (g *GraphQL) Cart(ctx context.Context) (*entity.Cart, error) {
	var out struct {
		Cart cartDTO `json:"cart"`
	}
	query := fmt.Sprintf(`query { cart { %s } }`, cartFields)
	if err := g.do(ctx, query, nil, &out); err != nil {
		return nil, err
	}
	return out.Cart.entity(), nil
}

func (g *GraphQL) AddToCart(ctx context.Context, productID string, quantity int) (*entity.CartItem, error) {
	var out struct {
		Item cartItemDTO `json:"addToCart"`
	}
	query := `mutation ($productId: ID!, $quantity: Int!) {
		addToCart(productId: $productId, quantity: $quantity) {
			id quantity product { id name price stock images }
		}
	}`
	vars := map[string]interface{}{"productId": productID, "quantity": quantity}
	if err := g.do(ctx, query, vars, &out); err != nil {
		return nil, err
	}
	return out.Item.entity(), nil
}

func (g *GraphQL) UpdateCartItem(ctx context.Context, itemID string, quantity int) (*entity.CartItem, error) {
	var out struct {
		Item cartItemDTO `json:"updateCartItem"`
	}
	query := `mutation ($id: ID!, $quantity: Int!) {
		updateCartItem(id: $id, quantity: $quantity) {
			id quantity product { id name price stock images }
		}
	}`
	vars := map[string]interface{}{"id": itemID, "quantity": quantity}
	if err := g.do(ctx, query, vars, &out); err != nil {
		return nil, err
	}
	return out.Item.entity(), nil
}

func (g *GraphQL) RemoveFromCart(ctx context.Context, itemID string) error {
	query := `mutation ($id: ID!) { removeFromCart(id: $id) }`
	return g.do(ctx, query, map[string]interface{}{"id": itemID}, nil)
}

func (g *GraphQL) ClearCart(ctx context.Context) error {
	return g.do(ctx, `mutation { clearCart }`, nil, nil)
}

func (g *GraphQL) Wishlist(ctx context.Context) (*entity.Wishlist, error) {
	var out struct {
		Wishlist wishlistDTO `json:"wishlist"`
	}
	query := `query { wishlist { id items { id product { id name price stock images } } } }`
	if err := g.do(ctx, query, nil, &out); err != nil {
		return nil, err
	}
	return out.Wishlist.entity(), nil
}

func (g *GraphQL) AddToWishlist(ctx context.Context, productID string) (*entity.WishlistItem, error) {
	var out struct {
		Item wishlistItemDTO `json:"addToWishlist"`
	}
	query := `mutation ($productId: ID!) {
		addToWishlist(productId: $productId) {
			id product { id name price stock images }
		}
	}`
	if err := g.do(ctx, query, map[string]interface{}{"productId": productID}, &out); err != nil {
		return nil, err
	}
	return &entity.WishlistItem{
		ID:        out.Item.ID,
		ProductID: out.Item.Product.ID,
		Product:   out.Item.Product.entity(),
	}, nil
}

func (g *GraphQL) RemoveFromWishlist(ctx context.Context, productID string) error {
	query := `mutation ($productId: ID!) { removeFromWishlist(productId: $productId) }`
	return g.do(ctx, query, map[string]interface{}{"productId": productID}, nil)
}

const authFields = `token user { id email firstName lastName role }`

func (g *GraphQL) Register(ctx context.Context, email, password, firstName, lastName string) (*entity.AuthPayload, error) {
	var out struct {
		Payload authDTO `json:"register"`
	}
	query := fmt.Sprintf(`mutation ($input: RegisterInput!) { register(input: $input) { %s } }`, authFields)
	vars := map[string]interface{}{"input": map[string]interface{}{
		"email":     email,
		"password":  password,
		"firstName": firstName,
		"lastName":  lastName,
	}}
	if err := g.do(ctx, query, vars, &out); err != nil {
		return nil, err
	}
	return out.Payload.entity(), nil
}

func (g *GraphQL) Login(ctx context.Context, email, password string) (*entity.AuthPayload, error) {
	var out struct {
		Payload authDTO `json:"login"`
	}
	query := fmt.Sprintf(`mutation ($input: LoginInput!) { login(input: $input) { %s } }`, authFields)
	vars := map[string]interface{}{"input": map[string]interface{}{
		"email":    email,
		"password": password,
	}}
	if err := g.do(ctx, query, vars, &out); err != nil {
		return nil, err
	}
	return out.Payload.entity(), nil
}
