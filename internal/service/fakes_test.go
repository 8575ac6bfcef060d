package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ec-service/internal/entity"
)

// In-memory repository fakes. They mirror the MySQL layer's contract,
// in particular returning sql.ErrNoRows where the real queries would.

type fakeUserRepo struct {
	users  map[string]*entity.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) GetUsers(ctx context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	if user.ID == "" {
		r.nextID++
		user.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, sql.ErrNoRows
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
	nextID   int
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) GetProductByID(ctx context.Context, id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeProductRepo) ListProducts(ctx context.Context, filter entity.ProductFilter) (*entity.ProductPage, error) {
	page := &entity.ProductPage{Edges: []*entity.Product{}}
	for _, p := range r.products {
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		page.Edges = append(page.Edges, p)
	}
	page.TotalCount = len(page.Edges)
	return page, nil
}

func (r *fakeProductRepo) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if product.ID == "" {
		r.nextID++
		product.ID = fmt.Sprintf("product-%d", r.nextID)
	}
	r.products[product.ID] = product
	return product, nil
}

func (r *fakeProductRepo) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if _, ok := r.products[product.ID]; !ok {
		return nil, sql.ErrNoRows
	}
	r.products[product.ID] = product
	return product, nil
}

func (r *fakeProductRepo) DeleteProduct(ctx context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) GetProductsByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
	products   *fakeProductRepo
	nextID     int
}

func newFakeCategoryRepo(products *fakeProductRepo, categories ...*entity.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: make(map[string]*entity.Category), products: products}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) GetCategoryByID(ctx context.Context, id string) (*entity.Category, error) {
	if c, ok := r.categories[id]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeCategoryRepo) GetCategoryByName(ctx context.Context, name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeCategoryRepo) GetCategories(ctx context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) GetChildren(ctx context.Context, parentID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	if category.ID == "" {
		r.nextID++
		category.ID = fmt.Sprintf("category-%d", r.nextID)
	}
	r.categories[category.ID] = category
	return category, nil
}

func (r *fakeCategoryRepo) UpdateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	if _, ok := r.categories[category.ID]; !ok {
		return nil, sql.ErrNoRows
	}
	r.categories[category.ID] = category
	return category, nil
}

func (r *fakeCategoryRepo) DeleteCategory(ctx context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) CountProducts(ctx context.Context, categoryID string) (int, error) {
	products, _ := r.products.GetProductsByCategory(ctx, categoryID)
	return len(products), nil
}

func (r *fakeCategoryRepo) CountChildren(ctx context.Context, categoryID string) (int, error) {
	children, _ := r.GetChildren(ctx, categoryID)
	return len(children), nil
}

type fakeCartRepo struct {
	carts    map[string]*entity.Cart // keyed by user id
	products *fakeProductRepo
	nextID   int
}

func newFakeCartRepo(products *fakeProductRepo) *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*entity.Cart), products: products}
}

func (r *fakeCartRepo) addCart(userID string) *entity.Cart {
	r.nextID++
	cart := &entity.Cart{ID: fmt.Sprintf("cart-%d", r.nextID), UserID: userID}
	r.carts[userID] = cart
	return cart
}

func (r *fakeCartRepo) cartByID(cartID string) *entity.Cart {
	for _, cart := range r.carts {
		if cart.ID == cartID {
			return cart
		}
	}
	return nil
}

func (r *fakeCartRepo) GetCartByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	if cart, ok := r.carts[userID]; ok {
		return cart, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeCartRepo) UpsertItem(ctx context.Context, cartID, productID string, quantity int) error {
	cart := r.cartByID(cartID)
	if cart == nil {
		return sql.ErrNoRows
	}
	for _, item := range cart.Items {
		if item.ProductID == productID {
			item.Quantity += quantity
			return nil
		}
	}
	product, _ := r.products.GetProductByID(ctx, productID)
	r.nextID++
	cart.Items = append(cart.Items, &entity.CartItem{
		ID:        fmt.Sprintf("item-%d", r.nextID),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		Product:   product,
	})
	return nil
}

func (r *fakeCartRepo) UpdateItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error {
	cart := r.cartByID(cartID)
	if cart == nil {
		return sql.ErrNoRows
	}
	for _, item := range cart.Items {
		if item.ID == itemID {
			item.Quantity = quantity
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *fakeCartRepo) RemoveItem(ctx context.Context, cartID, itemID string) error {
	cart := r.cartByID(cartID)
	if cart == nil {
		return sql.ErrNoRows
	}
	for i, item := range cart.Items {
		if item.ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *fakeCartRepo) ClearCart(ctx context.Context, cartID string) error {
	cart := r.cartByID(cartID)
	if cart == nil {
		return sql.ErrNoRows
	}
	cart.Items = nil
	return nil
}

type fakeWishlistRepo struct {
	wishlists map[string]*entity.Wishlist // keyed by user id
	products  *fakeProductRepo
	nextID    int
}

func newFakeWishlistRepo(products *fakeProductRepo) *fakeWishlistRepo {
	return &fakeWishlistRepo{wishlists: make(map[string]*entity.Wishlist), products: products}
}

func (r *fakeWishlistRepo) addWishlist(userID string) *entity.Wishlist {
	r.nextID++
	wishlist := &entity.Wishlist{ID: fmt.Sprintf("wishlist-%d", r.nextID), UserID: userID}
	r.wishlists[userID] = wishlist
	return wishlist
}

func (r *fakeWishlistRepo) wishlistByID(wishlistID string) *entity.Wishlist {
	for _, w := range r.wishlists {
		if w.ID == wishlistID {
			return w
		}
	}
	return nil
}

func (r *fakeWishlistRepo) GetWishlistByUserID(ctx context.Context, userID string) (*entity.Wishlist, error) {
	if w, ok := r.wishlists[userID]; ok {
		return w, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeWishlistRepo) AddItem(ctx context.Context, wishlistID, productID string) error {
	wishlist := r.wishlistByID(wishlistID)
	if wishlist == nil {
		return sql.ErrNoRows
	}
	if wishlist.Has(productID) {
		return nil
	}
	product, _ := r.products.GetProductByID(ctx, productID)
	r.nextID++
	wishlist.Items = append(wishlist.Items, &entity.WishlistItem{
		ID:         fmt.Sprintf("item-%d", r.nextID),
		WishlistID: wishlistID,
		ProductID:  productID,
		Product:    product,
	})
	return nil
}

func (r *fakeWishlistRepo) RemoveItem(ctx context.Context, wishlistID, productID string) error {
	wishlist := r.wishlistByID(wishlistID)
	if wishlist == nil {
		return sql.ErrNoRows
	}
	for i, item := range wishlist.Items {
		if item.ProductID == productID {
			wishlist.Items = append(wishlist.Items[:i], wishlist.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeWishlistRepo) Clear(ctx context.Context, wishlistID string) error {
	wishlist := r.wishlistByID(wishlistID)
	if wishlist == nil {
		return sql.ErrNoRows
	}
	wishlist.Items = nil
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
	carts  *fakeCartRepo
	nextID int
}

func newFakeOrderRepo(carts *fakeCartRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.Order), carts: carts}
}

func (r *fakeOrderRepo) CreateOrder(ctx context.Context, order *entity.Order, cartID string) (*entity.Order, error) {
	r.nextID++
	order.ID = fmt.Sprintf("order-%d", r.nextID)
	for _, item := range order.Items {
		item.OrderID = order.ID
	}
	r.orders[order.ID] = order
	// Mirrors the single transaction in MySQL: the cart empties with
	// the order insert.
	if r.carts != nil {
		_ = r.carts.ClearCart(ctx, cartID)
	}
	return order, nil
}

func (r *fakeOrderRepo) GetOrderByID(ctx context.Context, id string) (*entity.Order, error) {
	if o, ok := r.orders[id]; ok {
		return o, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeOrderRepo) GetOrders(ctx context.Context) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) GetOrdersByUserID(ctx context.Context, userID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return sql.ErrNoRows
	}
	order.Status = status
	return nil
}

type recordedEvent struct {
	orderID string
	event   string
}

type recordingPublisher struct {
	events []recordedEvent
	fail   error
}

func (p *recordingPublisher) PublishOrderEvent(ctx context.Context, order *entity.Order, event string) error {
	if p.fail != nil {
		return p.fail
	}
	p.events = append(p.events, recordedEvent{orderID: order.ID, event: event})
	return nil
}
