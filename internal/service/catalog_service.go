package service

import (
	"context"
	"database/sql"
	"errors"

	"ec-service/internal/authz"
	"ec-service/internal/entity"
)

// ProductRepo is the persistence surface for the product side of the
// catalog.
type ProductRepo interface {
	GetProductByID(ctx context.Context, id string) (*entity.Product, error)
	ListProducts(ctx context.Context, filter entity.ProductFilter) (*entity.ProductPage, error)
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	GetProductsByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error)
}

// CategoryRepo is the persistence surface for the category tree.
type CategoryRepo interface {
	GetCategoryByID(ctx context.Context, id string) (*entity.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*entity.Category, error)
	GetCategories(ctx context.Context) ([]*entity.Category, error)
	GetChildren(ctx context.Context, parentID string) ([]*entity.Category, error)
	CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error)
	UpdateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	CountProducts(ctx context.Context, categoryID string) (int, error)
	CountChildren(ctx context.Context, categoryID string) (int, error)
}

// CatalogService serves product and category queries and admin-only
// catalog management.
type CatalogService struct {
	products   ProductRepo
	categories CategoryRepo
}

func NewCatalogService(products ProductRepo, categories CategoryRepo) *CatalogService {
	return &CatalogService{products: products, categories: categories}
}

func (s *CatalogService) ListProducts(ctx context.Context, filter entity.ProductFilter) (*entity.ProductPage, error) {
	page, err := s.products.ListProducts(ctx, filter)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing products")
		return nil, err
	}
	return page, nil
}

func (s *CatalogService) Product(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.NotFound("product")
		}
		logger.Error().Err(err).Msgf("Error getting product %s", id)
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ProductsByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	return s.products.GetProductsByCategory(ctx, categoryID)
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Images      []string
	CategoryID  string
}

func (s *CatalogService) CreateProduct(ctx context.Context, actor *entity.User, input ProductInput) (*entity.Product, error) {
	if err := authz.Require(actor, authz.ManageProducts); err != nil {
		return nil, err
	}

	if _, err := s.categories.GetCategoryByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.NotFound("category")
		}
		return nil, err
	}

	product := &entity.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Images:      input.Images,
		CategoryID:  input.CategoryID,
	}
	created, err := s.products.CreateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating product")
		return nil, err
	}
	return created, nil
}

type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	Images      []string
	CategoryID  *string
}

func (s *CatalogService) UpdateProduct(ctx context.Context, actor *entity.User, id string, input ProductUpdate) (*entity.Product, error) {
	if err := authz.Require(actor, authz.ManageProducts); err != nil {
		return nil, err
	}

	product, err := s.Product(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if _, err := s.categories.GetCategoryByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, entity.NotFound("category")
			}
			return nil, err
		}
		product.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Images != nil {
		product.Images = input.Images
	}

	updated, err := s.products.UpdateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating product %s", id)
		return nil, err
	}
	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, actor *entity.User, id string) error {
	if err := authz.Require(actor, authz.ManageProducts); err != nil {
		return err
	}
	if _, err := s.Product(ctx, id); err != nil {
		return err
	}
	return s.products.DeleteProduct(ctx, id)
}

func (s *CatalogService) Categories(ctx context.Context) ([]*entity.Category, error) {
	return s.categories.GetCategories(ctx)
}

func (s *CatalogService) Category(ctx context.Context, id string) (*entity.Category, error) {
	category, err := s.categories.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.NotFound("category")
		}
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) CategoryChildren(ctx context.Context, id string) ([]*entity.Category, error) {
	return s.categories.GetChildren(ctx, id)
}

type CategoryInput struct {
	Name        string
	Description string
	ParentID    *string
}

func (s *CatalogService) CreateCategory(ctx context.Context, actor *entity.User, input CategoryInput) (*entity.Category, error) {
	if err := authz.Require(actor, authz.ManageCategories); err != nil {
		return nil, err
	}

	if _, err := s.categories.GetCategoryByName(ctx, input.Name); err == nil {
		return nil, entity.ErrCategoryNameExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if input.ParentID != nil {
		if _, err := s.categories.GetCategoryByID(ctx, *input.ParentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, entity.NotFound("parent category")
			}
			return nil, err
		}
	}

	category := &entity.Category{
		Name:        input.Name,
		Description: input.Description,
		ParentID:    input.ParentID,
	}
	created, err := s.categories.CreateCategory(ctx, category)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating category")
		return nil, err
	}
	return created, nil
}

type CategoryUpdate struct {
	Name        *string
	Description *string
	ParentID    *string
}

func (s *CatalogService) UpdateCategory(ctx context.Context, actor *entity.User, id string, input CategoryUpdate) (*entity.Category, error) {
	if err := authz.Require(actor, authz.ManageCategories); err != nil {
		return nil, err
	}

	category, err := s.Category(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != category.Name {
		if _, err := s.categories.GetCategoryByName(ctx, *input.Name); err == nil {
			return nil, entity.ErrCategoryNameExists
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, entity.ErrInvalidParent
		}
		if _, err := s.categories.GetCategoryByID(ctx, *input.ParentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, entity.NotFound("parent category")
			}
			return nil, err
		}
		category.ParentID = input.ParentID
	}

	updated, err := s.categories.UpdateCategory(ctx, category)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating category %s", id)
		return nil, err
	}
	return updated, nil
}

// DeleteCategory refuses to delete a category that still has products
// or child categories.
func (s *CatalogService) DeleteCategory(ctx context.Context, actor *entity.User, id string) error {
	if err := authz.Require(actor, authz.ManageCategories); err != nil {
		return err
	}

	if _, err := s.Category(ctx, id); err != nil {
		return err
	}

	productCount, err := s.categories.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return entity.ErrCategoryHasProducts
	}

	childCount, err := s.categories.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if childCount > 0 {
		return entity.ErrCategoryHasChildren
	}

	return s.categories.DeleteCategory(ctx, id)
}
