package entity

import "time"

type Wishlist struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Items     []*WishlistItem `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type WishlistItem struct {
	ID         string    `json:"id"`
	WishlistID string    `json:"wishlist_id"`
	ProductID  string    `json:"product_id"`
	Product    *Product  `json:"product,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Has reports membership of a product in the wishlist.
func (w *Wishlist) Has(productID string) bool {
	for _, item := range w.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
