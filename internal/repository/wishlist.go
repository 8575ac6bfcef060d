package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"ec-service/internal/entity"
)

type WishlistRepository struct {
	db *sql.DB
}

func NewWishlistRepository(db *sql.DB) *WishlistRepository {
	return &WishlistRepository{db}
}

func (r *WishlistRepository) GetWishlistByUserID(ctx context.Context, userID string) (*entity.Wishlist, error) {
	wishlist := &entity.Wishlist{Items: []*entity.WishlistItem{}}
	query := `SELECT id, user_id, created_at, updated_at FROM wishlists WHERE user_id = ?`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&wishlist.ID, &wishlist.UserID, &wishlist.CreatedAt, &wishlist.UpdatedAt)
	if err != nil {
		return nil, err
	}

	itemQuery := `
		SELECT wi.id, wi.wishlist_id, wi.product_id, wi.created_at,
		       p.id, p.name, p.description, p.price, p.stock, p.images, p.category_id, p.created_at, p.updated_at
		FROM wishlist_items wi
		JOIN products p ON p.id = wi.product_id
		WHERE wi.wishlist_id = ?
		ORDER BY wi.created_at`
	rows, err := r.db.QueryContext(ctx, itemQuery, wishlist.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item := &entity.WishlistItem{Product: &entity.Product{}}
		var images string
		err := rows.Scan(
			&item.ID, &item.WishlistID, &item.ProductID, &item.CreatedAt,
			&item.Product.ID, &item.Product.Name, &item.Product.Description, &item.Product.Price,
			&item.Product.Stock, &images, &item.Product.CategoryID, &item.Product.CreatedAt, &item.Product.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		item.Product.Images = entity.DecodeImages(images)
		wishlist.Items = append(wishlist.Items, item)
	}
	return wishlist, rows.Err()
}

// AddItem is a no-op when the product is already on the wishlist; the
// unique (wishlist_id, product_id) key makes the insert idempotent.
func (r *WishlistRepository) AddItem(ctx context.Context, wishlistID, productID string) error {
	query := `INSERT IGNORE INTO wishlist_items (id, wishlist_id, product_id, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), wishlistID, productID, time.Now().UTC())
	return err
}

// RemoveItem is a no-op when the product is absent.
func (r *WishlistRepository) RemoveItem(ctx context.Context, wishlistID, productID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM wishlist_items WHERE wishlist_id = ? AND product_id = ?`, wishlistID, productID)
	return err
}

func (r *WishlistRepository) Clear(ctx context.Context, wishlistID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM wishlist_items WHERE wishlist_id = ?`, wishlistID)
	return err
}
