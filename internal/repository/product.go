package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"ec-service/internal/entity"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db}
}

const productColumns = `id, name, description, price, stock, images, category_id, created_at, updated_at`

// sortColumns whitelists the filter's sortBy values; anything else
// falls back to created_at.
var sortColumns = map[string]string{
	"name":      "name",
	"price":     "price",
	"createdAt": "created_at",
}

func scanProduct(row interface{ Scan(...interface{}) error }) (*entity.Product, error) {
	product := &entity.Product{}
	var images string
	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Stock, &images, &product.CategoryID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	product.Images = entity.DecodeImages(images)
	return product, nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

// ListProducts returns one page of the filtered listing plus the
// unpaginated match count.
func (r *ProductRepository) ListProducts(ctx context.Context, filter entity.ProductFilter) (*entity.ProductPage, error) {
	where := ` WHERE 1=1`
	var args []interface{}

	if filter.Search != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		args = append(args, pattern, pattern)
	}
	if filter.CategoryID != "" {
		where += ` AND category_id = ?`
		args = append(args, filter.CategoryID)
	}

	var totalCount int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&totalCount)
	if err != nil {
		return nil, err
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filter.SortDirection == "asc" {
		direction = "ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + productColumns + ` FROM products` + where +
		` ORDER BY ` + column + ` ` + direction + ` LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	page := &entity.ProductPage{Edges: []*entity.Product{}, TotalCount: totalCount}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		page.Edges = append(page.Edges, product)
	}
	return page, rows.Err()
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	now := time.Now().UTC()
	product.ID = uuid.New().String()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `INSERT INTO products (id, name, description, price, stock, images, category_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, product.ID, product.Name, product.Description, product.Price, product.Stock, entity.EncodeImages(product.Images), product.CategoryID, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	product.UpdatedAt = time.Now().UTC()
	query := `UPDATE products SET name = ?, description = ?, price = ?, stock = ?, images = ?, category_id = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, product.Name, product.Description, product.Price, product.Stock, entity.EncodeImages(product.Images), product.CategoryID, product.UpdatedAt, product.ID)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	return err
}

func (r *ProductRepository) GetProductsByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category_id = ?`
	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// AdjustStock atomically applies a stock delta, refusing to go negative.
func (r *ProductRepository) AdjustStock(ctx context.Context, productID string, delta int) error {
	query := `UPDATE products SET stock = stock + ?, updated_at = ? WHERE id = ? AND stock + ? >= 0`
	res, err := r.db.ExecContext(ctx, query, delta, time.Now().UTC(), productID, delta)
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
