package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventOrderCreated   EventType = "order_created"
	EventOrderCancelled EventType = "order_cancelled"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// OrderCreatedPayload payload.
type OrderCreatedPayload struct {
	OrderID         int64  `json:"order_id"`
	Reference       string `json:"reference"`
	TotalPriceCents int64  `json:"total_price_cents"`
	ItemCount       int    `json:"item_count"`
}

// OrderCancelledPayload payload.
type OrderCancelledPayload struct {
	OrderID   int64  `json:"order_id"`
	Reference string `json:"reference"`
}
