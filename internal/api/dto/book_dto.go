package dto

import (
	"time"

	"github.com/spec-kit/bookstore-service/internal/domain"
)

// BookRequest payload for catalog writes.
type BookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	PriceCents    int64  `json:"priceCents"`
	StockQuantity int    `json:"stockQuantity"`
}

// BookResponse projection of a catalog entry.
type BookResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	PriceCents    int64     `json:"priceCents"`
	StockQuantity int       `json:"stockQuantity"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewBookResponse maps the domain model.
func NewBookResponse(book *domain.Book) BookResponse {
	return BookResponse{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		Description:   book.Description,
		PriceCents:    book.PriceCents,
		StockQuantity: book.StockQuantity,
		CreatedAt:     book.CreatedAt,
	}
}

// NewBookListResponse maps a page.
func NewBookListResponse(books []domain.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for idx := range books {
		out = append(out, NewBookResponse(&books[idx]))
	}
	return out
}
