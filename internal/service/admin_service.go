package service

import (
	"context"

	"github.com/spec-kit/bookstore-service/internal/domain"
	"github.com/spec-kit/bookstore-service/internal/repository"
	apperrors "github.com/spec-kit/bookstore-service/pkg/util"
)

// StatsSummary aggregates store-wide counts for the admin dashboard.
type StatsSummary struct {
	Users  int64 `json:"users"`
	Books  int64 `json:"books"`
	Orders int64 `json:"orders"`
}

// AdminService serves role-gated administrative reads.
type AdminService struct {
	users  repository.UserRepository
	books  repository.BookRepository
	orders repository.OrderRepository
}

// NewAdminService builds the service.
func NewAdminService(users repository.UserRepository, books repository.BookRepository, orders repository.OrderRepository) *AdminService {
	return &AdminService{users: users, books: books, orders: orders}
}

// ListUsers returns a page of accounts.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

// ListOrders returns a page over every user's orders, optionally filtered
// by status.
func (s *AdminService) ListOrders(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]domain.Order, error) {
	if status != "" && !status.Valid() {
		return nil, apperrors.NewValidationError("unknown order status", map[string]any{"status": status})
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.orders.List(ctx, status, limit, offset)
}

// Stats returns store-wide counts.
func (s *AdminService) Stats(ctx context.Context) (*StatsSummary, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	books, err := s.books.Count(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsSummary{Users: users, Books: books, Orders: orders}, nil
}
