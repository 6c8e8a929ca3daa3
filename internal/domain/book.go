package domain

import "time"

// Book is a catalog entry.
type Book struct {
	ID            int64
	Title         string
	Author        string
	Description   string
	PriceCents    int64
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InStock reports whether the requested quantity can be fulfilled.
func (b *Book) InStock(quantity int) bool {
	return quantity > 0 && b.StockQuantity >= quantity
}
