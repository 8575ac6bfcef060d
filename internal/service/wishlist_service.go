package service

import (
	"context"
	"database/sql"
	"errors"

	"ec-service/internal/entity"
)

// WishlistRepo is the persistence surface for the wishlist aggregate.
type WishlistRepo interface {
	GetWishlistByUserID(ctx context.Context, userID string) (*entity.Wishlist, error)
	AddItem(ctx context.Context, wishlistID, productID string) error
	RemoveItem(ctx context.Context, wishlistID, productID string) error
	Clear(ctx context.Context, wishlistID string) error
}

// WishlistService manages the per-user product set. Add and remove are
// idempotent by design.
type WishlistService struct {
	wishlists WishlistRepo
	products  ProductRepo
}

func NewWishlistService(wishlists WishlistRepo, products ProductRepo) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products}
}

func (s *WishlistService) Wishlist(ctx context.Context, user *entity.User) (*entity.Wishlist, error) {
	if user == nil {
		return nil, entity.ErrNotAuthenticated
	}
	wishlist, err := s.wishlists.GetWishlistByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.NotFound("wishlist")
		}
		logger.Error().Err(err).Msgf("Error getting wishlist for user %s", user.ID)
		return nil, err
	}
	return wishlist, nil
}

// Add puts a product on the wishlist; adding it twice leaves a single
// membership entry.
func (s *WishlistService) Add(ctx context.Context, user *entity.User, productID string) (*entity.Wishlist, error) {
	if user == nil {
		return nil, entity.ErrNotAuthenticated
	}

	if _, err := s.products.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.NotFound("product")
		}
		return nil, err
	}

	wishlist, err := s.Wishlist(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.wishlists.AddItem(ctx, wishlist.ID, productID); err != nil {
		logger.Error().Err(err).Msgf("Error adding product %s to wishlist %s", productID, wishlist.ID)
		return nil, err
	}
	return s.Wishlist(ctx, user)
}

// Remove takes a product off the wishlist; removing an absent product
// is a no-op.
func (s *WishlistService) Remove(ctx context.Context, user *entity.User, productID string) (*entity.Wishlist, error) {
	if user == nil {
		return nil, entity.ErrNotAuthenticated
	}

	wishlist, err := s.Wishlist(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.wishlists.RemoveItem(ctx, wishlist.ID, productID); err != nil {
		logger.Error().Err(err).Msgf("Error removing product %s from wishlist %s", productID, wishlist.ID)
		return nil, err
	}
	return s.Wishlist(ctx, user)
}

// IsMember reports whether the product is on the user's wishlist.
func (s *WishlistService) IsMember(ctx context.Context, user *entity.User, productID string) (bool, error) {
	wishlist, err := s.Wishlist(ctx, user)
	if err != nil {
		return false, err
	}
	return wishlist.Has(productID), nil
}

func (s *WishlistService) Clear(ctx context.Context, user *entity.User) (*entity.Wishlist, error) {
	if user == nil {
		return nil, entity.ErrNotAuthenticated
	}

	wishlist, err := s.Wishlist(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.wishlists.Clear(ctx, wishlist.ID); err != nil {
		logger.Error().Err(err).Msgf("Error clearing wishlist %s", wishlist.ID)
		return nil, err
	}
	return s.Wishlist(ctx, user)
}
