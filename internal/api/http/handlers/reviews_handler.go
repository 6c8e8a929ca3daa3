package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bookstore-service/internal/api/dto"
	"github.com/spec-kit/bookstore-service/internal/service"
)

// ReviewsHandler exposes review writes for the current user.
type ReviewsHandler struct {
	reviews *service.ReviewService
}

// NewReviewsHandler constructs handler.
func NewReviewsHandler(reviews *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviews}
}

// Create handles POST /api/reviews/books/:bookId.
func (h *ReviewsHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	bookID, err := paramInt64(c, "bookId")
	if err != nil {
		return err
	}

	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	review, err := h.reviews.Create(c.Context(), userID, bookID, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewReviewResponse(review)})
}

// Update handles PUT /api/reviews/:id.
func (h *ReviewsHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	reviewID, err := paramInt64(c, "id")
	if err != nil {
		return err
	}

	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	review, err := h.reviews.Update(c.Context(), userID, reviewID, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReviewResponse(review)})
}

// Delete handles DELETE /api/reviews/:id.
func (h *ReviewsHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	reviewID, err := paramInt64(c, "id")
	if err != nil {
		return err
	}

	if err := h.reviews.Delete(c.Context(), userID, reviewID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
