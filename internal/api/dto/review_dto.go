package dto

import (
	"time"

	"github.com/spec-kit/bookstore-service/internal/domain"
)

// ReviewRequest payload for creating or updating a review.
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewResponse projection of a review.
type ReviewResponse struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"bookId"`
	UserID    int64     `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewReviewResponse maps the domain model.
func NewReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		BookID:    review.BookID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

// NewReviewListResponse maps a page.
func NewReviewListResponse(reviews []domain.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for idx := range reviews {
		out = append(out, NewReviewResponse(&reviews[idx]))
	}
	return out
}
