package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"ec-service/internal/entity"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db}
}

// CreateOrder persists the order with its item snapshots and clears the
// source cart, all in one transaction. A crash can never leave an order
// behind with stale cart items.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *entity.Order, cartID string) (*entity.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order.ID = uuid.New().String()
	order.CreatedAt = now
	order.UpdatedAt = now

	orderQuery := `INSERT INTO orders (id, user_id, status, total, address, payment_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, orderQuery, order.ID, order.UserID, order.Status, order.Total, order.Address, order.PaymentID, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Batch insert the item snapshots
	itemQuery := `INSERT INTO order_items (id, order_id, product_id, quantity, price, created_at) VALUES `
	var values []interface{}
	for _, item := range order.Items {
		item.ID = uuid.New().String()
		item.OrderID = order.ID
		item.CreatedAt = now
		itemQuery += "(?, ?, ?, ?, ?, ?),"
		values = append(values, item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price, item.CreatedAt)
	}
	itemQuery = itemQuery[:len(itemQuery)-1]

	_, err = tx.ExecContext(ctx, itemQuery, values...)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return order, nil
}

const orderColumns = `id, user_id, status, total, address, payment_id, created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (*entity.Order, error) {
	order := &entity.Order{Items: []*entity.OrderItem{}}
	err := row.Scan(&order.ID, &order.UserID, &order.Status, &order.Total, &order.Address, &order.PaymentID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`
	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	items, err := r.getOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *OrderRepository) getOrderItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	query := `SELECT id, order_id, product_id, quantity, price, created_at FROM order_items WHERE order_id = ?`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*entity.OrderItem{}
	for rows.Next() {
		item := &entity.OrderItem{}
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetOrders lists every order, newest first.
func (r *OrderRepository) GetOrders(ctx context.Context) ([]*entity.Order, error) {
	return r.queryOrders(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

// GetOrdersByUserID lists one user's orders, newest first.
func (r *OrderRepository) GetOrdersByUserID(ctx context.Context, userID string) ([]*entity.Order, error) {
	return r.queryOrders(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*entity.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*entity.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		items, err := r.getOrderItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}
	return orders, nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	query := `UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	return err
}
