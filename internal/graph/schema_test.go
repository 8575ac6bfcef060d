package graph

import (
	"context"
	"database/sql"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ec-service/internal/entity"
	"ec-service/internal/service"
)

type stubProducts struct {
	list []*entity.Product
}

func (s *stubProducts) GetProductByID(ctx context.Context, id string) (*entity.Product, error) {
	for _, p := range s.list {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubProducts) ListProducts(ctx context.Context, filter entity.ProductFilter) (*entity.ProductPage, error) {
	return &entity.ProductPage{Edges: s.list, TotalCount: len(s.list)}, nil
}

func (s *stubProducts) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	s.list = append(s.list, product)
	return product, nil
}

func (s *stubProducts) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	return product, nil
}

func (s *stubProducts) DeleteProduct(ctx context.Context, id string) error { return nil }

func (s *stubProducts) GetProductsByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	return s.list, nil
}

type stubCategories struct{}

func (stubCategories) GetCategoryByID(ctx context.Context, id string) (*entity.Category, error) {
	return nil, sql.ErrNoRows
}

func (stubCategories) GetCategoryByName(ctx context.Context, name string) (*entity.Category, error) {
	return nil, sql.ErrNoRows
}

func (stubCategories) GetCategories(ctx context.Context) ([]*entity.Category, error) {
	return nil, nil
}

func (stubCategories) GetChildren(ctx context.Context, parentID string) ([]*entity.Category, error) {
	return nil, nil
}

func (stubCategories) CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	return category, nil
}

func (stubCategories) UpdateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	return category, nil
}

func (stubCategories) DeleteCategory(ctx context.Context, id string) error { return nil }

func (stubCategories) CountProducts(ctx context.Context, categoryID string) (int, error) {
	return 0, nil
}

func (stubCategories) CountChildren(ctx context.Context, categoryID string) (int, error) {
	return 0, nil
}

func newTestSchema(t *testing.T, products *stubProducts) graphql.Schema {
	t.Helper()
	schema, err := NewSchema(&Resolver{
		Catalog: service.NewCatalogService(products, stubCategories{}),
	})
	require.NoError(t, err)
	return schema
}

func TestHealthCheck(t *testing.T) {
	schema := newTestSchema(t, &stubProducts{})

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ healthCheck }`,
		Context:       context.Background(),
	})
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	assert.Equal(t, "OK", data["healthCheck"])
}

func TestProductsQuery(t *testing.T) {
	schema := newTestSchema(t, &stubProducts{list: []*entity.Product{
		{ID: "p1", Name: "Keyboard", Price: 49.99, Stock: 10, Images: []string{"kb.jpg"}},
	}})

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ products { totalCount edges { id name price } } }`,
		Context:       context.Background(),
	})
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	page := data["products"].(map[string]interface{})
	assert.Equal(t, 1, page["totalCount"])

	edges := page["edges"].([]interface{})
	require.Len(t, edges, 1)
	first := edges[0].(map[string]interface{})
	assert.Equal(t, "p1", first["id"])
	assert.Equal(t, "Keyboard", first["name"])
}

func TestMeRequiresAuthentication(t *testing.T) {
	schema := newTestSchema(t, &stubProducts{})

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ me { id email } }`,
		Context:       context.Background(),
	})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "UNAUTHENTICATED", result.Errors[0].Extensions["code"])
}

func TestMeReadsUserFromContext(t *testing.T) {
	schema := newTestSchema(t, &stubProducts{})

	user := &entity.User{ID: "u1", Email: "jane@example.com", Role: entity.RoleCustomer}
	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ me { id email role } }`,
		Context:       WithUser(context.Background(), user),
	})
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	me := data["me"].(map[string]interface{})
	assert.Equal(t, "u1", me["id"])
	assert.Equal(t, "jane@example.com", me["email"])
	assert.Equal(t, "CUSTOMER", me["role"])
}
