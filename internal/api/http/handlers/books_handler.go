package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bookstore-service/internal/api/dto"
	"github.com/spec-kit/bookstore-service/internal/service"
)

// BooksHandler exposes the public catalog.
type BooksHandler struct {
	books   *service.BookService
	reviews *service.ReviewService
}

// NewBooksHandler constructs handler.
func NewBooksHandler(books *service.BookService, reviews *service.ReviewService) *BooksHandler {
	return &BooksHandler{books: books, reviews: reviews}
}

// List handles GET /api/books.
func (h *BooksHandler) List(c *fiber.Ctx) error {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	books, err := h.books.List(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBookListResponse(books)})
}

// Get handles GET /api/books/:id.
func (h *BooksHandler) Get(c *fiber.Ctx) error {
	bookID, err := paramInt64(c, "id")
	if err != nil {
		return err
	}

	book, err := h.books.Get(c.Context(), bookID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBookResponse(book)})
}

// ListReviews handles GET /api/books/:id/reviews.
func (h *BooksHandler) ListReviews(c *fiber.Ctx) error {
	bookID, err := paramInt64(c, "id")
	if err != nil {
		return err
	}
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	reviews, err := h.reviews.ListByBook(c.Context(), bookID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReviewListResponse(reviews)})
}
