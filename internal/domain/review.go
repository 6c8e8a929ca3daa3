package domain

import "time"

// Review is a user's rating of a book. One review per user per book.
type Review struct {
	ID        int64
	BookID    int64
	UserID    int64
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidRating reports whether the rating is within the 1..5 scale.
func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
