package graph

import (
	"github.com/graphql-go/graphql"

	"ec-service/internal/entity"
)

func (b *schemaBuilder) buildQuery() *graphql.Object {
	r := b.r

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"healthCheck": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return "OK", nil
				},
			},

			"products": &graphql.Field{
				Type: b.productConnection,
				Args: graphql.FieldConfigArgument{
					"search":        &graphql.ArgumentConfig{Type: graphql.String},
					"categoryId":    &graphql.ArgumentConfig{Type: graphql.ID},
					"sortBy":        &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "createdAt"},
					"sortDirection": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "desc"},
					"limit":         &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
					"offset":        &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := entity.ProductFilter{
						Search:        argString(p.Args, "search"),
						CategoryID:    argString(p.Args, "categoryId"),
						SortBy:        argString(p.Args, "sortBy"),
						SortDirection: argString(p.Args, "sortDirection"),
						Limit:         argInt(p.Args, "limit"),
						Offset:        argInt(p.Args, "offset"),
					}
					return r.Catalog.ListProducts(p.Context, filter)
				},
			},

			"product": &graphql.Field{
				Type: b.product,
				Args: idArg(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Catalog.Product(p.Context, argString(p.Args, "id"))
				},
			},

			"categories": &graphql.Field{
				Type: graphql.NewList(b.category),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Catalog.Categories(p.Context)
				},
			},

			"category": &graphql.Field{
				Type: b.category,
				Args: idArg(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Catalog.Category(p.Context, argString(p.Args, "id"))
				},
			},

			"cart": &graphql.Field{
				Type: b.cart,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Carts.Cart(p.Context, UserFromContext(p.Context))
				},
			},

			"wishlist": &graphql.Field{
				Type: b.wishlist,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Wishlists.Wishlist(p.Context, UserFromContext(p.Context))
				},
			},

			"orders": &graphql.Field{
				Type: graphql.NewList(b.order),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Orders.Orders(p.Context, UserFromContext(p.Context))
				},
			},

			"order": &graphql.Field{
				Type: b.order,
				Args: idArg(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Orders.Order(p.Context, UserFromContext(p.Context), argString(p.Args, "id"))
				},
			},

			"me": &graphql.Field{
				Type: b.user,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user := UserFromContext(p.Context)
					if user == nil {
						return nil, entity.ErrNotAuthenticated
					}
					return user, nil
				},
			},

			"users": &graphql.Field{
				Type: graphql.NewList(b.user),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Auth.Users(p.Context, UserFromContext(p.Context))
				},
			},

			"user": &graphql.Field{
				Type: b.user,
				Args: idArg(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Auth.User(p.Context, UserFromContext(p.Context), argString(p.Args, "id"))
				},
			},
		},
	})
}

func idArg() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
}

func argString(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func argInt(args map[string]interface{}, key string) int {
	v, _ := args[key].(int)
	return v
}

func optString(input map[string]interface{}, key string) *string {
	if v, ok := input[key].(string); ok {
		return &v
	}
	return nil
}

func optFloat(input map[string]interface{}, key string) *float64 {
	switch v := input[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

func optInt(input map[string]interface{}, key string) *int {
	if v, ok := input[key].(int); ok {
		return &v
	}
	return nil
}

func optStrings(input map[string]interface{}, key string) []string {
	raw, ok := input[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
