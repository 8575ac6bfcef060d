package entity

import "time"

// Cart holds a user's live cart. Totals are derived on read, never
// stored; the subtotal follows the current product price, unlike an
// order which snapshots price at creation.
type Cart struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Items     []*CartItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type CartItem struct {
	ID        string    `json:"id"`
	CartID    string    `json:"cart_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalItems returns the summed quantity across all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal returns the live-price subtotal. Lines whose product has not
// been resolved contribute nothing.
func (c *Cart) Subtotal() float64 {
	var subtotal float64
	for _, item := range c.Items {
		if item.Product == nil {
			continue
		}
		subtotal += item.Product.Price * float64(item.Quantity)
	}
	return subtotal
}

// Item returns the line with the given id, or nil.
func (c *Cart) Item(itemID string) *CartItem {
	for _, item := range c.Items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}
