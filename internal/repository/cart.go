package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"ec-service/internal/entity"
)

type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db}
}

// GetCartByUserID loads the user's cart with its items and each item's
// live product, so derived totals can be computed from current prices.
func (r *CartRepository) GetCartByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	cart := &entity.Cart{Items: []*entity.CartItem{}}
	cartQuery := `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = ?`
	err := r.db.QueryRowContext(ctx, cartQuery, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, err
	}

	itemQuery := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
		       p.id, p.name, p.description, p.price, p.stock, p.images, p.category_id, p.created_at, p.updated_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = ?
		ORDER BY ci.created_at`
	rows, err := r.db.QueryContext(ctx, itemQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item := &entity.CartItem{Product: &entity.Product{}}
		var images string
		err := rows.Scan(
			&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
			&item.Product.ID, &item.Product.Name, &item.Product.Description, &item.Product.Price,
			&item.Product.Stock, &images, &item.Product.CategoryID, &item.Product.CreatedAt, &item.Product.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		item.Product.Images = entity.DecodeImages(images)
		cart.Items = append(cart.Items, item)
	}
	return cart, rows.Err()
}

// UpsertItem adds quantity to an existing line or creates a new one.
// The conditional upsert keeps concurrent duplicate adds from losing
// updates; the unique (cart_id, product_id) key does the coordination.
func (r *CartRepository) UpsertItem(ctx context.Context, cartID, productID string, quantity int) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity), updated_at = VALUES(updated_at)`
	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), cartID, productID, quantity, now, now)
	return err
}

func (r *CartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error {
	query := `UPDATE cart_items SET quantity = ?, updated_at = ? WHERE id = ? AND cart_id = ?`
	_, err := r.db.ExecContext(ctx, query, quantity, time.Now().UTC(), itemID, cartID)
	return err
}

func (r *CartRepository) RemoveItem(ctx context.Context, cartID, itemID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ? AND cart_id = ?`, itemID, cartID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *CartRepository) ClearCart(ctx context.Context, cartID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
