package entity

import (
	"encoding/json"
	"time"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images"`
	CategoryID  string    `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EncodeImages serializes the image list for the JSON text column.
func EncodeImages(images []string) string {
	if images == nil {
		images = []string{}
	}
	b, _ := json.Marshal(images)
	return string(b)
}

// DecodeImages parses the stored image list. Malformed data decodes to
// an empty list rather than failing the read.
func DecodeImages(raw string) []string {
	var images []string
	if err := json.Unmarshal([]byte(raw), &images); err != nil || images == nil {
		return []string{}
	}
	return images
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ParentID    *string   `json:"parent_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductFilter selects, sorts and paginates a product listing.
type ProductFilter struct {
	Search        string
	CategoryID    string
	SortBy        string // name, price or createdAt
	SortDirection string // asc or desc
	Limit         int
	Offset        int
}

// ProductPage carries one page of results plus the filtered-but-unpaginated
// count, so callers can compute page counts.
type ProductPage struct {
	Edges      []*Product `json:"edges"`
	TotalCount int        `json:"total_count"`
}
