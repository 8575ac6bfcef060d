package service

import (
	"context"
	"database/sql"
	"errors"

	"ec-service/internal/authz"
	"ec-service/internal/entity"
)

// OrderRepo is the persistence surface for the order aggregate.
type OrderRepo interface {
	CreateOrder(ctx context.Context, order *entity.Order, cartID string) (*entity.Order, error)
	GetOrderByID(ctx context.Context, id string) (*entity.Order, error)
	GetOrders(ctx context.Context) ([]*entity.Order, error)
	GetOrdersByUserID(ctx context.Context, userID string) ([]*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) error
}

// OrderService turns carts into immutable order snapshots and tracks
// their status.
type OrderService struct {
	orders    OrderRepo
	carts     CartRepo
	publisher EventPublisher
}

func NewOrderService(orders OrderRepo, carts CartRepo, publisher EventPublisher) *OrderService {
	return &OrderService{orders: orders, carts: carts, publisher: publisher}
}

// CreateOrder snapshots the user's cart into a PENDING order. Item
// prices are copied from the current catalog price; later price changes
// never touch the order. The order insert and the cart clear commit in
// one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, user *entity.User, address, paymentID string) (*entity.Order, error) {
	if user == nil {
		return nil, entity.ErrNotAuthenticated
	}

	cart, err := s.carts.GetCartByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.NotFound("cart")
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, entity.ErrEmptyCart
	}

	order := &entity.Order{
		UserID:    user.ID,
		Status:    entity.OrderPending,
		Address:   address,
		PaymentID: paymentID,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, &entity.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
		order.Total += item.Product.Price * float64(item.Quantity)
	}

	created, err := s.orders.CreateOrder(ctx, order, cart.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating order")
		return nil, err
	}

	// The order is committed; a failed publish is logged, not returned.
	if err := s.publisher.PublishOrderEvent(ctx, created, "created"); err != nil {
		logger.Error().Err(err).Msgf("Error publishing created event for order %s", created.ID)
	}

	return created, nil
}

// Orders returns all orders for admins, and the caller's own orders
// otherwise. Newest first.
func (s *OrderService) Orders(ctx context.Context, user *entity.User) ([]*entity.Order, error) {
	if user == nil {
		return nil, entity.ErrNotAuthenticated
	}
	if authz.Allowed(user, authz.ViewAllOrders) {
		return s.orders.GetOrders(ctx)
	}
	return s.orders.GetOrdersByUserID(ctx, user.ID)
}

// UserOrders lists one user's orders, newest first. It backs relation
// resolution on a User object the caller is already allowed to see.
func (s *OrderService) UserOrders(ctx context.Context, userID string) ([]*entity.Order, error) {
	return s.orders.GetOrdersByUserID(ctx, userID)
}

// Order returns a single order, visible to its owner and to admins.
func (s *OrderService) Order(ctx context.Context, user *entity.User, id string) (*entity.Order, error) {
	if user == nil {
		return nil, entity.ErrNotAuthenticated
	}

	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.NotFound("order")
		}
		return nil, err
	}

	if order.UserID != user.ID && !authz.Allowed(user, authz.ViewAllOrders) {
		return nil, entity.ErrForbidden
	}
	return order, nil
}

// UpdateStatus advances an order through its state machine. Admin and
// staff only; transitions are forward-only with CANCELLED as a side
// exit from PENDING or PROCESSING.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *entity.User, id string, status entity.OrderStatus) (*entity.Order, error) {
	if err := authz.Require(actor, authz.UpdateOrderState); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, entity.ErrInvalidStatus
	}

	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.NotFound("order")
		}
		return nil, err
	}

	if !order.Status.CanTransition(status) {
		return nil, entity.ErrInvalidTransition
	}

	if err := s.orders.UpdateOrderStatus(ctx, id, status); err != nil {
		logger.Error().Err(err).Msgf("Error updating status for order %s", id)
		return nil, err
	}
	order.Status = status

	event := "updated"
	if status == entity.OrderCancelled {
		event = "cancelled"
	}
	if err := s.publisher.PublishOrderEvent(ctx, order, event); err != nil {
		logger.Error().Err(err).Msgf("Error publishing %s event for order %s", event, order.ID)
	}

	return order, nil
}
