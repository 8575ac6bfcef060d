package graph

import (
	"github.com/graphql-go/graphql"

	"ec-service/internal/entity"
	"ec-service/internal/service"
)

func (b *schemaBuilder) buildMutation() *graphql.Object {
	r := b.r

	registerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "RegisterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"firstName": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"lastName":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	loginInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoginInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	updateUserInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"password":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"firstName": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"lastName":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	productInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"price":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"stock":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"images":      &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
			"categoryId":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	productUpdateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"price":       &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"stock":       &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"images":      &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
			"categoryId":  &graphql.InputObjectFieldConfig{Type: graphql.ID},
		},
	})

	categoryInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CategoryInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"parentId":    &graphql.InputObjectFieldConfig{Type: graphql.ID},
		},
	})

	categoryUpdateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CategoryUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"parentId":    &graphql.InputObjectFieldConfig{Type: graphql.ID},
		},
	})

	createOrderInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateOrderInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"address":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"paymentId": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: b.authPayload,
				Args: inputArg(registerInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := p.Args["input"].(map[string]interface{})
					return r.Auth.Register(p.Context,
						argString(input, "email"), argString(input, "password"),
						argString(input, "firstName"), argString(input, "lastName"))
				},
			},

			"login": &graphql.Field{
				Type: b.authPayload,
				Args: inputArg(loginInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := p.Args["input"].(map[string]interface{})
					return r.Auth.Login(p.Context, argString(input, "email"), argString(input, "password"))
				},
			},

			"logout": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := r.Auth.Logout(p.Context, UserFromContext(p.Context)); err != nil {
						return false, err
					}
					return true, nil
				},
			},

			"updateUser": &graphql.Field{
				Type: b.user,
				Args: inputArg(updateUserInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := p.Args["input"].(map[string]interface{})
					return r.Auth.UpdateUser(p.Context, UserFromContext(p.Context), service.UpdateUserInput{
						Email:     optString(input, "email"),
						Password:  optString(input, "password"),
						FirstName: optString(input, "firstName"),
						LastName:  optString(input, "lastName"),
					})
				},
			},

			"deleteUser": &graphql.Field{
				Type: graphql.Boolean,
				Args: idArg(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := r.Auth.DeleteUser(p.Context, UserFromContext(p.Context), argString(p.Args, "id")); err != nil {
						return false, err
					}
					return true, nil
				},
			},

			"createProduct": &graphql.Field{
				Type: b.product,
				Args: inputArg(productInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := p.Args["input"].(map[string]interface{})
					return r.Catalog.CreateProduct(p.Context, UserFromContext(p.Context), service.ProductInput{
						Name:        argString(input, "name"),
						Description: argString(input, "description"),
						Price:       argFloat(input, "price"),
						Stock:       argInt(input, "stock"),
						Images:      optStrings(input, "images"),
						CategoryID:  argString(input, "categoryId"),
					})
				},
			},

			"updateProduct": &graphql.Field{
				Type: b.product,
				Args: idInputArg(productUpdateInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := p.Args["input"].(map[string]interface{})
					return r.Catalog.UpdateProduct(p.Context, UserFromContext(p.Context), argString(p.Args, "id"), service.ProductUpdate{
						Name:        optString(input, "name"),
						Description: optString(input, "description"),
						Price:       optFloat(input, "price"),
						Stock:       optInt(input, "stock"),
						Images:      optStrings(input, "images"),
						CategoryID:  optString(input, "categoryId"),
					})
				},
			},

			"deleteProduct": &graphql.Field{
				Type: graphql.Boolean,
				Args: idArg(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := r.Catalog.DeleteProduct(p.Context, UserFromContext(p.Context), argString(p.Args, "id")); err != nil {
						return false, err
					}
					return true, nil
				},
			},

			"createCategory": &graphql.Field{
				Type: b.category,
				Args: inputArg(categoryInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := p.Args["input"].(map[string]interface{})
					return r.Catalog.CreateCategory(p.Context, UserFromContext(p.Context), service.CategoryInput{
						Name:        argString(input, "name"),
						Description: argString(input, "description"),
						ParentID:    optString(input, "parentId"),
					})
				},
			},

			"updateCategory": &graphql.Field{
				Type: b.category,
				Args: idInputArg(categoryUpdateInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := p.Args["input"].(map[string]interface{})
					return r.Catalog.UpdateCategory(p.Context, UserFromContext(p.Context), argString(p.Args, "id"), service.CategoryUpdate{
						Name:        optString(input, "name"),
						Description: optString(input, "description"),
						ParentID:    optString(input, "parentId"),
					})
				},
			},

			"deleteCategory": &graphql.Field{
				Type: graphql.Boolean,
				Args: idArg(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := r.Catalog.DeleteCategory(p.Context, UserFromContext(p.Context), argString(p.Args, "id")); err != nil {
						return false, err
					}
					return true, nil
				},
			},

			"addToCart": &graphql.Field{
				Type: b.cartItem,
				Args: graphql.FieldConfigArgument{
					"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"quantity":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					productID := argString(p.Args, "productId")
					cart, err := r.Carts.AddItem(p.Context, UserFromContext(p.Context), productID, argInt(p.Args, "quantity"))
					if err != nil {
						return nil, err
					}
					for _, item := range cart.Items {
						if item.ProductID == productID {
							return item, nil
						}
					}
					return nil, entity.NotFound("cart item")
				},
			},

			"updateCartItem": &graphql.Field{
				Type: b.cartItem,
				Args: graphql.FieldConfigArgument{
					"id":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"quantity": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					itemID := argString(p.Args, "id")
					cart, err := r.Carts.UpdateItem(p.Context, UserFromContext(p.Context), itemID, argInt(p.Args, "quantity"))
					if err != nil {
						return nil, err
					}
					return cart.Item(itemID), nil
				},
			},

			"removeFromCart": &graphql.Field{
				Type: graphql.Boolean,
				Args: idArg(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.Carts.RemoveItem(p.Context, UserFromContext(p.Context), argString(p.Args, "id")); err != nil {
						return false, err
					}
					return true, nil
				},
			},

			"clearCart": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.Carts.Clear(p.Context, UserFromContext(p.Context)); err != nil {
						return false, err
					}
					return true, nil
				},
			},

			"addToWishlist": &graphql.Field{
				Type: b.wishlistItem,
				Args: graphql.FieldConfigArgument{
					"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					productID := argString(p.Args, "productId")
					wishlist, err := r.Wishlists.Add(p.Context, UserFromContext(p.Context), productID)
					if err != nil {
						return nil, err
					}
					for _, item := range wishlist.Items {
						if item.ProductID == productID {
							return item, nil
						}
					}
					return nil, entity.NotFound("wishlist item")
				},
			},

			"removeFromWishlist": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.Wishlists.Remove(p.Context, UserFromContext(p.Context), argString(p.Args, "productId")); err != nil {
						return false, err
					}
					return true, nil
				},
			},

			"clearWishlist": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.Wishlists.Clear(p.Context, UserFromContext(p.Context)); err != nil {
						return false, err
					}
					return true, nil
				},
			},

			"createOrder": &graphql.Field{
				Type: b.order,
				Args: inputArg(createOrderInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := p.Args["input"].(map[string]interface{})
					return r.Orders.CreateOrder(p.Context, UserFromContext(p.Context),
						argString(input, "address"), argString(input, "paymentId"))
				},
			},

			"updateOrderStatus": &graphql.Field{
				Type: b.order,
				Args: graphql.FieldConfigArgument{
					"id":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.statusEnum)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					status := entity.OrderStatus(argString(p.Args, "status"))
					return r.Orders.UpdateStatus(p.Context, UserFromContext(p.Context), argString(p.Args, "id"), status)
				},
			},
		},
	})
}

func inputArg(input *graphql.InputObject) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(input)},
	}
}

func idInputArg(input *graphql.InputObject) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(input)},
	}
}

func argFloat(args map[string]interface{}, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}
