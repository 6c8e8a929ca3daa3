package dto

import (
	"time"

	"github.com/spec-kit/bookstore-service/internal/domain"
)

// OrderLineRequest one requested item.
type OrderLineRequest struct {
	BookID   int64 `json:"bookId"`
	Quantity int   `json:"quantity"`
}

// CreateOrderRequest payload for placing an order.
type CreateOrderRequest struct {
	Items []OrderLineRequest `json:"items"`
}

// OrderItemResponse projection of an order line.
type OrderItemResponse struct {
	BookID         int64 `json:"bookId"`
	Quantity       int   `json:"quantity"`
	UnitPriceCents int64 `json:"unitPriceCents"`
}

// OrderResponse projection of an order.
type OrderResponse struct {
	ID              int64               `json:"id"`
	Reference       string              `json:"reference"`
	TotalPriceCents int64               `json:"totalPriceCents"`
	Status          string              `json:"status"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// NewOrderResponse maps the domain model.
func NewOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			BookID:         item.BookID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}
	return OrderResponse{
		ID:              order.ID,
		Reference:       order.Reference,
		TotalPriceCents: order.TotalPriceCents,
		Status:          string(order.Status),
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}

// NewOrderListResponse maps a page.
func NewOrderListResponse(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for idx := range orders {
		out = append(out, NewOrderResponse(&orders[idx]))
	}
	return out
}
