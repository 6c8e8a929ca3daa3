package domain

import "time"

// OrderStatus tracks order lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order groups purchased items for a single user.
type Order struct {
	ID              int64
	UserID          int64
	Reference       string
	TotalPriceCents int64
	Status          OrderStatus
	Items           []OrderItem
	CreatedAt       time.Time
}

// OrderItem is a line within an order, priced at order time.
type OrderItem struct {
	ID             int64
	OrderID        int64
	BookID         int64
	Quantity       int
	UnitPriceCents int64
}

// Valid reports whether the status belongs to the closed set.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether the order may still be cancelled by its owner.
func (o *Order) Cancellable() bool {
	return o.Status == OrderStatusPending
}
