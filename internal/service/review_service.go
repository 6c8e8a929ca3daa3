package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bookstore-service/internal/domain"
	"github.com/spec-kit/bookstore-service/internal/repository"
	apperrors "github.com/spec-kit/bookstore-service/pkg/util"
)

// ReviewService manages book reviews. One review per user per book; only
// the author may change or remove their review.
type ReviewService struct {
	reviews repository.ReviewRepository
	books   repository.BookRepository
}

// NewReviewService builds the service.
func NewReviewService(reviews repository.ReviewRepository, books repository.BookRepository) *ReviewService {
	return &ReviewService{reviews: reviews, books: books}
}

// Create adds a review for a book the user has not reviewed yet.
func (s *ReviewService) Create(ctx context.Context, userID, bookID int64, rating int, comment string) (*domain.Review, error) {
	if !domain.ValidRating(rating) {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", nil)
	}

	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("book", map[string]any{"bookId": bookID})
		}
		return nil, err
	}

	exists, err := s.reviews.ExistsByBookAndUser(ctx, bookID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewDuplicateResource("book already reviewed", map[string]any{"bookId": bookID})
	}

	review := &domain.Review{
		BookID:  bookID,
		UserID:  userID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Update changes the user's own review.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID int64, rating int, comment string) (*domain.Review, error) {
	if !domain.ValidRating(rating) {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", nil)
	}

	review, err := s.getOwned(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	review.Rating = rating
	review.Comment = comment
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes the user's own review.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID int64) error {
	review, err := s.getOwned(ctx, userID, reviewID)
	if err != nil {
		return err
	}
	return s.reviews.Delete(ctx, review.ID)
}

// ListByBook returns a page of reviews for a book. Public.
func (s *ReviewService) ListByBook(ctx context.Context, bookID int64, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.reviews.ListByBook(ctx, bookID, limit, offset)
}

func (s *ReviewService) getOwned(ctx context.Context, userID, reviewID int64) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("review", map[string]any{"reviewId": reviewID})
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, apperrors.NewForbidden("not your review")
	}
	return review, nil
}
