package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bookstore-service/internal/domain"
	"github.com/spec-kit/bookstore-service/internal/events"
	"github.com/spec-kit/bookstore-service/internal/repository"
	apperrors "github.com/spec-kit/bookstore-service/pkg/util"
)

// OrderLine is one requested item at order time.
type OrderLine struct {
	BookID   int64
	Quantity int
}

// OrderService creates and serves orders for the current user. Items are
// priced from the book records at creation time, never from the request.
type OrderService struct {
	orders     repository.OrderRepository
	books      repository.BookRepository
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, books repository.BookRepository, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, books: books, dispatcher: dispatcher}
}

// Create places an order for the user. Stock is checked here and decremented
// transactionally by the repository; a concurrent shortfall surfaces as a
// conflict.
func (s *OrderService) Create(ctx context.Context, userID int64, lines []OrderLine) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, apperrors.NewValidationError("order needs at least one item", nil)
	}

	order := &domain.Order{
		UserID:    userID,
		Reference: uuid.NewString(),
		Status:    domain.OrderStatusPending,
	}

	for _, line := range lines {
		book, err := s.books.GetByID(ctx, line.BookID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("book", map[string]any{"bookId": line.BookID})
			}
			return nil, err
		}
		if !book.InStock(line.Quantity) {
			return nil, apperrors.NewConflict("insufficient stock", map[string]any{
				"bookId":    line.BookID,
				"requested": line.Quantity,
				"available": book.StockQuantity,
			})
		}

		order.Items = append(order.Items, domain.OrderItem{
			BookID:         book.ID,
			Quantity:       line.Quantity,
			UnitPriceCents: book.PriceCents,
		})
		order.TotalPriceCents += book.PriceCents * int64(line.Quantity)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("insufficient stock", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOrderCreated,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload: events.OrderCreatedPayload{
			OrderID:         order.ID,
			Reference:       order.Reference,
			TotalPriceCents: order.TotalPriceCents,
			ItemCount:       len(order.Items),
		},
	})

	return order, nil
}

// ListMine returns the user's orders, newest first.
func (s *OrderService) ListMine(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.orders.ListByUser(ctx, userID, limit, offset)
}

// GetMine returns one order, enforcing ownership.
func (s *OrderService) GetMine(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", map[string]any{"orderId": orderID})
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NewForbidden("not your order")
	}
	return order, nil
}

// CancelMine cancels a pending order owned by the user.
func (s *OrderService) CancelMine(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	order, err := s.GetMine(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Cancellable() {
		return nil, apperrors.NewConflict("order can no longer be cancelled", map[string]any{
			"status": order.Status,
		})
	}

	if err := s.orders.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled); err != nil {
		return nil, err
	}
	order.Status = domain.OrderStatusCancelled

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOrderCancelled,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   events.OrderCancelledPayload{OrderID: order.ID, Reference: order.Reference},
	})

	return order, nil
}

func (s *OrderService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
