package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/bookstore-service/internal/domain"
	"github.com/spec-kit/bookstore-service/internal/repository"
	apperrors "github.com/spec-kit/bookstore-service/pkg/util"
)

// BookCache is the catalog read cache consumed by BookService.
type BookCache interface {
	Get(ctx context.Context, bookID int64) (*domain.Book, error)
	Set(ctx context.Context, book *domain.Book) error
	Invalidate(ctx context.Context, bookID int64) error
}

// BookService serves the public catalog and admin catalog management.
// Single-book reads go through the cache; every write invalidates.
type BookService struct {
	books  repository.BookRepository
	cache  BookCache
	logger *zap.Logger
}

// NewBookService builds the service. Cache may be nil.
func NewBookService(books repository.BookRepository, cache BookCache, logger *zap.Logger) *BookService {
	return &BookService{books: books, cache: cache, logger: logger}
}

// List returns a catalog page.
func (s *BookService) List(ctx context.Context, limit, offset int) ([]domain.Book, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.books.List(ctx, limit, offset)
}

// Get returns one book, preferring the cache.
func (s *BookService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	if s.cache != nil {
		if book, err := s.cache.Get(ctx, id); err == nil {
			return book, nil
		}
	}

	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("book", map[string]any{"bookId": id})
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, book); err != nil {
			s.logger.Warn("book cache set failed", zap.Int64("book_id", id), zap.Error(err))
		}
	}
	return book, nil
}

// Create adds a catalog entry. Admin only, enforced at the route policy.
func (s *BookService) Create(ctx context.Context, book *domain.Book) error {
	if book.Title == "" || book.Author == "" {
		return apperrors.NewValidationError("title and author required", nil)
	}
	if book.PriceCents < 0 || book.StockQuantity < 0 {
		return apperrors.NewValidationError("price and stock must be non-negative", nil)
	}
	return s.books.Create(ctx, book)
}

// Update replaces a catalog entry and drops its cached copy.
func (s *BookService) Update(ctx context.Context, book *domain.Book) error {
	if err := s.books.Update(ctx, book); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("book", map[string]any{"bookId": book.ID})
		}
		return err
	}
	s.invalidate(ctx, book.ID)
	return nil
}

// Delete removes a catalog entry and drops its cached copy.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	if err := s.books.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("book", map[string]any{"bookId": id})
		}
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *BookService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("book cache invalidate failed", zap.Int64("book_id", id), zap.Error(err))
	}
}
