package entity

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CanTransition enforces the forward-only order state machine:
// PENDING -> PROCESSING -> SHIPPED -> DELIVERED, with CANCELLED
// reachable only from PENDING or PROCESSING.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	switch s {
	case OrderPending:
		return to == OrderProcessing || to == OrderCancelled
	case OrderProcessing:
		return to == OrderShipped || to == OrderCancelled
	case OrderShipped:
		return to == OrderDelivered
	}
	return false
}

// Order is an immutable snapshot of a cart at checkout time. Item
// prices are frozen at creation and never track later catalog changes.
type Order struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Items     []*OrderItem `json:"items"`
	Status    OrderStatus  `json:"status"`
	Total     float64      `json:"total"`
	Address   string       `json:"address"`
	PaymentID string       `json:"payment_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type OrderItem struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"` // snapshot, not a live reference
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
