package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"ec-service/internal/entity"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db}
}

const categoryColumns = `id, name, description, parent_id, created_at, updated_at`

func scanCategory(row interface{ Scan(...interface{}) error }) (*entity.Category, error) {
	category := &entity.Category{}
	err := row.Scan(&category.ID, &category.Name, &category.Description, &category.ParentID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`
	return scanCategory(r.db.QueryRowContext(ctx, query, id))
}

func (r *CategoryRepository) GetCategoryByName(ctx context.Context, name string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = ?`
	return scanCategory(r.db.QueryRowContext(ctx, query, name))
}

func (r *CategoryRepository) GetCategories(ctx context.Context) ([]*entity.Category, error) {
	return r.queryCategories(ctx, `SELECT `+categoryColumns+` FROM categories`)
}

func (r *CategoryRepository) GetChildren(ctx context.Context, parentID string) ([]*entity.Category, error) {
	return r.queryCategories(ctx, `SELECT `+categoryColumns+` FROM categories WHERE parent_id = ?`, parentID)
}

func (r *CategoryRepository) queryCategories(ctx context.Context, query string, args ...interface{}) ([]*entity.Category, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	now := time.Now().UTC()
	category.ID = uuid.New().String()
	category.CreatedAt = now
	category.UpdatedAt = now

	query := `INSERT INTO categories (id, name, description, parent_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, category.ID, category.Name, category.Description, category.ParentID, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	category.UpdatedAt = time.Now().UTC()
	query := `UPDATE categories SET name = ?, description = ?, parent_id = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, category.Name, category.Description, category.ParentID, category.UpdatedAt, category.ID)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return err
}

func (r *CategoryRepository) CountProducts(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE category_id = ?`, categoryID).Scan(&count)
	return count, err
}

func (r *CategoryRepository) CountChildren(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE parent_id = ?`, categoryID).Scan(&count)
	return count, err
}
