package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bookstore-service/internal/api/dto"
	"github.com/spec-kit/bookstore-service/internal/domain"
	"github.com/spec-kit/bookstore-service/internal/service"
)

// AdminHandler exposes the ADMIN-gated endpoints: account listing, store
// stats, and catalog writes.
type AdminHandler struct {
	admin *service.AdminService
	books *service.BookService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin *service.AdminService, books *service.BookService) *AdminHandler {
	return &AdminHandler{admin: admin, books: books}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	users, err := h.admin.ListUsers(c.Context(), limit, offset)
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for idx := range users {
		out = append(out, dto.NewUserResponse(&users[idx]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// ListOrders handles GET /api/admin/orders. An optional status query
// parameter narrows the listing to one lifecycle state.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)
	status := domain.OrderStatus(strings.ToUpper(c.Query("status")))

	orders, err := h.admin.ListOrders(c.Context(), status, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderListResponse(orders)})
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.admin.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// CreateBook handles POST /api/admin/books.
func (h *AdminHandler) CreateBook(c *fiber.Ctx) error {
	var req dto.BookRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	book := &domain.Book{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		PriceCents:    req.PriceCents,
		StockQuantity: req.StockQuantity,
	}
	if err := h.books.Create(c.Context(), book); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBookResponse(book)})
}

// UpdateBook handles PUT /api/admin/books/:id.
func (h *AdminHandler) UpdateBook(c *fiber.Ctx) error {
	bookID, err := paramInt64(c, "id")
	if err != nil {
		return err
	}

	var req dto.BookRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	book := &domain.Book{
		ID:            bookID,
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		PriceCents:    req.PriceCents,
		StockQuantity: req.StockQuantity,
	}
	if err := h.books.Update(c.Context(), book); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBookResponse(book)})
}

// DeleteBook handles DELETE /api/admin/books/:id.
func (h *AdminHandler) DeleteBook(c *fiber.Ctx) error {
	bookID, err := paramInt64(c, "id")
	if err != nil {
		return err
	}

	if err := h.books.Delete(c.Context(), bookID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
