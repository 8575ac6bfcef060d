// Package graph exposes the storefront API as a GraphQL schema. The
// operation names are the wire contract existing clients depend on.
package graph

import (
	"github.com/graphql-go/graphql"

	"ec-service/internal/entity"
	"ec-service/internal/format"
	"ec-service/internal/service"
)

// Resolver bundles the services the schema resolves against.
type Resolver struct {
	Auth      *service.AuthService
	Catalog   *service.CatalogService
	Carts     *service.CartService
	Wishlists *service.WishlistService
	Orders    *service.OrderService
}

type schemaBuilder struct {
	r *Resolver

	roleEnum   *graphql.Enum
	statusEnum *graphql.Enum

	user              *graphql.Object
	category          *graphql.Object
	product           *graphql.Object
	productConnection *graphql.Object
	cart              *graphql.Object
	cartItem          *graphql.Object
	wishlist          *graphql.Object
	wishlistItem      *graphql.Object
	order             *graphql.Object
	orderItem         *graphql.Object
	authPayload       *graphql.Object
}

// NewSchema builds the executable schema over the given resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	b := &schemaBuilder{r: r}
	b.buildEnums()
	b.buildTypes()
	b.buildRelations()

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    b.buildQuery(),
		Mutation: b.buildMutation(),
	})
}

func (b *schemaBuilder) buildEnums() {
	b.roleEnum = graphql.NewEnum(graphql.EnumConfig{
		Name: "Role",
		Values: graphql.EnumValueConfigMap{
			"ADMIN":    &graphql.EnumValueConfig{Value: "ADMIN"},
			"STAFF":    &graphql.EnumValueConfig{Value: "STAFF"},
			"CUSTOMER": &graphql.EnumValueConfig{Value: "CUSTOMER"},
		},
	})

	b.statusEnum = graphql.NewEnum(graphql.EnumConfig{
		Name: "OrderStatus",
		Values: graphql.EnumValueConfigMap{
			"PENDING":    &graphql.EnumValueConfig{Value: "PENDING"},
			"PROCESSING": &graphql.EnumValueConfig{Value: "PROCESSING"},
			"SHIPPED":    &graphql.EnumValueConfig{Value: "SHIPPED"},
			"DELIVERED":  &graphql.EnumValueConfig{Value: "DELIVERED"},
			"CANCELLED":  &graphql.EnumValueConfig{Value: "CANCELLED"},
		},
	})
}

func (b *schemaBuilder) buildTypes() {
	b.user = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        fieldOf(graphql.ID, func(u *entity.User) interface{} { return u.ID }),
			"email":     fieldOf(graphql.String, func(u *entity.User) interface{} { return u.Email }),
			"firstName": fieldOf(graphql.String, func(u *entity.User) interface{} { return u.FirstName }),
			"lastName":  fieldOf(graphql.String, func(u *entity.User) interface{} { return u.LastName }),
			"role":      fieldOf(b.roleEnum, func(u *entity.User) interface{} { return string(u.Role) }),
			"createdAt": fieldOf(graphql.DateTime, func(u *entity.User) interface{} { return u.CreatedAt }),
			"updatedAt": fieldOf(graphql.DateTime, func(u *entity.User) interface{} { return u.UpdatedAt }),
		},
	})

	b.category = graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":          fieldOf(graphql.ID, func(c *entity.Category) interface{} { return c.ID }),
			"name":        fieldOf(graphql.String, func(c *entity.Category) interface{} { return c.Name }),
			"description": fieldOf(graphql.String, func(c *entity.Category) interface{} { return c.Description }),
			"createdAt":   fieldOf(graphql.DateTime, func(c *entity.Category) interface{} { return c.CreatedAt }),
			"updatedAt":   fieldOf(graphql.DateTime, func(c *entity.Category) interface{} { return c.UpdatedAt }),
		},
	})

	b.product = graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          fieldOf(graphql.ID, func(p *entity.Product) interface{} { return p.ID }),
			"name":        fieldOf(graphql.String, func(p *entity.Product) interface{} { return p.Name }),
			"description": fieldOf(graphql.String, func(p *entity.Product) interface{} { return p.Description }),
			"price":       fieldOf(graphql.Float, func(p *entity.Product) interface{} { return p.Price }),
			"priceLabel":  fieldOf(graphql.String, func(p *entity.Product) interface{} { return format.Price(p.Price) }),
			"stock":       fieldOf(graphql.Int, func(p *entity.Product) interface{} { return p.Stock }),
			"images":      fieldOf(graphql.NewList(graphql.String), func(p *entity.Product) interface{} { return p.Images }),
			"categoryId":  fieldOf(graphql.ID, func(p *entity.Product) interface{} { return p.CategoryID }),
			"createdAt":   fieldOf(graphql.DateTime, func(p *entity.Product) interface{} { return p.CreatedAt }),
			"updatedAt":   fieldOf(graphql.DateTime, func(p *entity.Product) interface{} { return p.UpdatedAt }),
		},
	})

	b.productConnection = graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductConnection",
		Fields: graphql.Fields{
			"edges":      fieldOf(graphql.NewList(b.product), func(p *entity.ProductPage) interface{} { return p.Edges }),
			"totalCount": fieldOf(graphql.Int, func(p *entity.ProductPage) interface{} { return p.TotalCount }),
		},
	})

	b.cartItem = graphql.NewObject(graphql.ObjectConfig{
		Name: "CartItem",
		Fields: graphql.Fields{
			"id":        fieldOf(graphql.ID, func(i *entity.CartItem) interface{} { return i.ID }),
			"quantity":  fieldOf(graphql.Int, func(i *entity.CartItem) interface{} { return i.Quantity }),
			"createdAt": fieldOf(graphql.DateTime, func(i *entity.CartItem) interface{} { return i.CreatedAt }),
			"updatedAt": fieldOf(graphql.DateTime, func(i *entity.CartItem) interface{} { return i.UpdatedAt }),
		},
	})

	b.cart = graphql.NewObject(graphql.ObjectConfig{
		Name: "Cart",
		Fields: graphql.Fields{
			"id":         fieldOf(graphql.ID, func(c *entity.Cart) interface{} { return c.ID }),
			"items":      fieldOf(graphql.NewList(b.cartItem), func(c *entity.Cart) interface{} { return c.Items }),
			"totalItems": fieldOf(graphql.Int, func(c *entity.Cart) interface{} { return c.TotalItems() }),
			"subtotal":      fieldOf(graphql.Float, func(c *entity.Cart) interface{} { return c.Subtotal() }),
			"subtotalLabel": fieldOf(graphql.String, func(c *entity.Cart) interface{} { return format.Price(c.Subtotal()) }),
			"createdAt":  fieldOf(graphql.DateTime, func(c *entity.Cart) interface{} { return c.CreatedAt }),
			"updatedAt":  fieldOf(graphql.DateTime, func(c *entity.Cart) interface{} { return c.UpdatedAt }),
		},
	})

	b.wishlistItem = graphql.NewObject(graphql.ObjectConfig{
		Name: "WishlistItem",
		Fields: graphql.Fields{
			"id":        fieldOf(graphql.ID, func(i *entity.WishlistItem) interface{} { return i.ID }),
			"createdAt": fieldOf(graphql.DateTime, func(i *entity.WishlistItem) interface{} { return i.CreatedAt }),
		},
	})

	b.wishlist = graphql.NewObject(graphql.ObjectConfig{
		Name: "Wishlist",
		Fields: graphql.Fields{
			"id":        fieldOf(graphql.ID, func(w *entity.Wishlist) interface{} { return w.ID }),
			"items":     fieldOf(graphql.NewList(b.wishlistItem), func(w *entity.Wishlist) interface{} { return w.Items }),
			"createdAt": fieldOf(graphql.DateTime, func(w *entity.Wishlist) interface{} { return w.CreatedAt }),
			"updatedAt": fieldOf(graphql.DateTime, func(w *entity.Wishlist) interface{} { return w.UpdatedAt }),
		},
	})

	b.orderItem = graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderItem",
		Fields: graphql.Fields{
			"id":        fieldOf(graphql.ID, func(i *entity.OrderItem) interface{} { return i.ID }),
			"quantity":  fieldOf(graphql.Int, func(i *entity.OrderItem) interface{} { return i.Quantity }),
			"price":     fieldOf(graphql.Float, func(i *entity.OrderItem) interface{} { return i.Price }),
			"createdAt": fieldOf(graphql.DateTime, func(i *entity.OrderItem) interface{} { return i.CreatedAt }),
		},
	})

	b.order = graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":        fieldOf(graphql.ID, func(o *entity.Order) interface{} { return o.ID }),
			"status":    fieldOf(b.statusEnum, func(o *entity.Order) interface{} { return string(o.Status) }),
			"total":      fieldOf(graphql.Float, func(o *entity.Order) interface{} { return o.Total }),
			"totalLabel": fieldOf(graphql.String, func(o *entity.Order) interface{} { return format.Price(o.Total) }),
			"placedAt":   fieldOf(graphql.String, func(o *entity.Order) interface{} { return format.Date(o.CreatedAt) }),
			"address":   fieldOf(graphql.String, func(o *entity.Order) interface{} { return o.Address }),
			"paymentId": fieldOf(graphql.String, func(o *entity.Order) interface{} { return o.PaymentID }),
			"items":     fieldOf(graphql.NewList(b.orderItem), func(o *entity.Order) interface{} { return o.Items }),
			"createdAt": fieldOf(graphql.DateTime, func(o *entity.Order) interface{} { return o.CreatedAt }),
			"updatedAt": fieldOf(graphql.DateTime, func(o *entity.Order) interface{} { return o.UpdatedAt }),
		},
	})

	b.authPayload = graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": fieldOf(graphql.String, func(a *entity.AuthPayload) interface{} { return a.Token }),
			"user":  fieldOf(b.user, func(a *entity.AuthPayload) interface{} { return a.User }),
		},
	})
}

// buildRelations wires the circular object references after all types
// exist.
func (b *schemaBuilder) buildRelations() {
	r := b.r

	b.category.AddFieldConfig("parent", &graphql.Field{
		Type: b.category,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			category := p.Source.(*entity.Category)
			if category.ParentID == nil {
				return nil, nil
			}
			return r.Catalog.Category(p.Context, *category.ParentID)
		},
	})
	b.category.AddFieldConfig("children", &graphql.Field{
		Type: graphql.NewList(b.category),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.Catalog.CategoryChildren(p.Context, p.Source.(*entity.Category).ID)
		},
	})
	b.category.AddFieldConfig("products", &graphql.Field{
		Type: graphql.NewList(b.product),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.Catalog.ProductsByCategory(p.Context, p.Source.(*entity.Category).ID)
		},
	})

	b.product.AddFieldConfig("category", &graphql.Field{
		Type: b.category,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.Catalog.Category(p.Context, p.Source.(*entity.Product).CategoryID)
		},
	})

	b.cartItem.AddFieldConfig("product", &graphql.Field{
		Type: b.product,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			item := p.Source.(*entity.CartItem)
			if item.Product != nil {
				return item.Product, nil
			}
			return r.Catalog.Product(p.Context, item.ProductID)
		},
	})
	b.cart.AddFieldConfig("user", &graphql.Field{
		Type: b.user,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.Auth.UserByID(p.Context, p.Source.(*entity.Cart).UserID)
		},
	})

	b.wishlistItem.AddFieldConfig("product", &graphql.Field{
		Type: b.product,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			item := p.Source.(*entity.WishlistItem)
			if item.Product != nil {
				return item.Product, nil
			}
			return r.Catalog.Product(p.Context, item.ProductID)
		},
	})
	b.wishlist.AddFieldConfig("user", &graphql.Field{
		Type: b.user,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.Auth.UserByID(p.Context, p.Source.(*entity.Wishlist).UserID)
		},
	})

	b.orderItem.AddFieldConfig("product", &graphql.Field{
		Type: b.product,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			item := p.Source.(*entity.OrderItem)
			if item.Product != nil {
				return item.Product, nil
			}
			return r.Catalog.Product(p.Context, item.ProductID)
		},
	})
	b.order.AddFieldConfig("user", &graphql.Field{
		Type: b.user,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.Auth.UserByID(p.Context, p.Source.(*entity.Order).UserID)
		},
	})

	b.user.AddFieldConfig("cart", &graphql.Field{
		Type: b.cart,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.Carts.Cart(p.Context, p.Source.(*entity.User))
		},
	})
	b.user.AddFieldConfig("wishlist", &graphql.Field{
		Type: b.wishlist,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.Wishlists.Wishlist(p.Context, p.Source.(*entity.User))
		},
	})
	b.user.AddFieldConfig("orders", &graphql.Field{
		Type: graphql.NewList(b.order),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.Orders.UserOrders(p.Context, p.Source.(*entity.User).ID)
		},
	})
}

// fieldOf builds a field with an explicit resolver; the default
// resolver would key off json tags, which use snake_case.
func fieldOf[T any](t graphql.Output, get func(T) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			source, ok := p.Source.(T)
			if !ok {
				return nil, nil
			}
			return get(source), nil
		},
	}
}
