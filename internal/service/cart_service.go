package service

import (
	"context"
	"database/sql"
	"errors"

	"ec-service/internal/entity"
)

// CartRepo is the persistence surface for the cart aggregate.
type CartRepo interface {
	GetCartByUserID(ctx context.Context, userID string) (*entity.Cart, error)
	UpsertItem(ctx context.Context, cartID, productID string, quantity int) error
	UpdateItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	ClearCart(ctx context.Context, cartID string) error
}

// CartService mutates a user's live cart. Totals are derived from the
// returned cart, never stored.
type CartService struct {
	carts    CartRepo
	products ProductRepo
}

func NewCartService(carts CartRepo, products ProductRepo) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) Cart(ctx context.Context, user *entity.User) (*entity.Cart, error) {
	if user == nil {
		return nil, entity.ErrNotAuthenticated
	}
	cart, err := s.carts.GetCartByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.NotFound("cart")
		}
		logger.Error().Err(err).Msgf("Error getting cart for user %s", user.ID)
		return nil, err
	}
	return cart, nil
}

// AddItem adds quantity of a product to the cart. A second add of the
// same product increments the existing line instead of creating a new
// one.
func (s *CartService) AddItem(ctx context.Context, user *entity.User, productID string, quantity int) (*entity.Cart, error) {
	if user == nil {
		return nil, entity.ErrNotAuthenticated
	}
	if quantity < 1 {
		return nil, entity.ErrInvalidQuantity
	}

	if _, err := s.products.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.NotFound("product")
		}
		return nil, err
	}

	cart, err := s.Cart(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.carts.UpsertItem(ctx, cart.ID, productID, quantity); err != nil {
		logger.Error().Err(err).Msgf("Error adding product %s to cart %s", productID, cart.ID)
		return nil, err
	}
	return s.Cart(ctx, user)
}

// UpdateItem sets a line's quantity. Quantity below 1 is invalid, not
// an implicit remove.
func (s *CartService) UpdateItem(ctx context.Context, user *entity.User, itemID string, quantity int) (*entity.Cart, error) {
	if user == nil {
		return nil, entity.ErrNotAuthenticated
	}
	if quantity < 1 {
		return nil, entity.ErrInvalidQuantity
	}

	cart, err := s.Cart(ctx, user)
	if err != nil {
		return nil, err
	}
	if cart.Item(itemID) == nil {
		return nil, entity.NotFound("cart item")
	}

	if err := s.carts.UpdateItemQuantity(ctx, cart.ID, itemID, quantity); err != nil {
		logger.Error().Err(err).Msgf("Error updating cart item %s", itemID)
		return nil, err
	}
	return s.Cart(ctx, user)
}

func (s *CartService) RemoveItem(ctx context.Context, user *entity.User, itemID string) (*entity.Cart, error) {
	if user == nil {
		return nil, entity.ErrNotAuthenticated
	}

	cart, err := s.Cart(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.carts.RemoveItem(ctx, cart.ID, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.NotFound("cart item")
		}
		logger.Error().Err(err).Msgf("Error removing cart item %s", itemID)
		return nil, err
	}
	return s.Cart(ctx, user)
}

// Clear empties the cart; clearing an empty cart is a no-op.
func (s *CartService) Clear(ctx context.Context, user *entity.User) (*entity.Cart, error) {
	if user == nil {
		return nil, entity.ErrNotAuthenticated
	}

	cart, err := s.Cart(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.carts.ClearCart(ctx, cart.ID); err != nil {
		logger.Error().Err(err).Msgf("Error clearing cart %s", cart.ID)
		return nil, err
	}
	return s.Cart(ctx, user)
}
