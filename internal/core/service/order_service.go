package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Bateyjosue/e-commerce-platform-backend/internal/core/domain"
	"github.com/Bateyjosue/e-commerce-platform-backend/internal/port"
)

// OrderService places orders against the primary store. All stock
// decrements and the order insert happen inside one unit of work, so a
// failed placement leaves no partial effect behind.
type OrderService struct {
	db port.DatabaseRepository
}

func NewOrderService(db port.DatabaseRepository) *OrderService {
	return &OrderService{db: db}
}

// PlaceOrder validates the line items, decrements stock for each of them
// in submission order and persists the resulting order, committing all of
// it atomically. The total price is computed from the prices read inside
// the unit of work, never from client input.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, items []domain.OrderItem, description string) (*domain.Order, error) {
	if userID == "" {
		return nil, domain.Errorf(domain.ErrBadRequest, "missing user identity")
	}
	if len(items) == 0 {
		return nil, domain.Errorf(domain.ErrBadRequest, "No order items provided")
	}
	for _, item := range items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, domain.Errorf(domain.ErrBadRequest, "each order item needs a product id and a quantity of at least 1")
		}
	}

	uow, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin unit of work: %w", err)
	}
	defer uow.Rollback()

	var totalPrice float64
	for _, item := range items {
		product, err := s.db.GetProductForUpdate(ctx, uow, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("load product %s: %w", item.ProductID, err)
		}
		if product == nil {
			return nil, domain.Errorf(domain.ErrNotFound, "Product with id %s not found", item.ProductID)
		}
		if product.Stock < item.Quantity {
			return nil, domain.Errorf(domain.ErrInsufficientStock, "Insufficient stock for %s", product.Name)
		}

		ok, err := s.db.DecrementStock(ctx, uow, item.ProductID, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("decrement stock for product %s: %w", item.ProductID, err)
		}
		if !ok {
			// A concurrent order got there first; the guard on the
			// UPDATE is what actually prevents overselling.
			return nil, domain.Errorf(domain.ErrInsufficientStock, "Insufficient stock for %s", product.Name)
		}

		totalPrice += product.Price * float64(item.Quantity)
	}

	now := time.Now()
	order := domain.Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		Items:       append([]domain.OrderItem(nil), items...),
		TotalPrice:  totalPrice,
		Status:      domain.OrderStatusPending,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.db.CreateOrder(ctx, uow, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}

	return &order, nil
}

// ListMyOrders returns every order owned by the user.
func (s *OrderService) ListMyOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, domain.Errorf(domain.ErrBadRequest, "missing user identity")
	}

	orders, err := s.db.OrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders for user %s: %w", userID, err)
	}
	return orders, nil
}
