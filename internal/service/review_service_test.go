package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewFixture(t *testing.T) (*ReviewService, *fakeBookRepo, int64) {
	t.Helper()
	reviews := newFakeReviewRepo()
	books := newFakeBookRepo()
	book := seedBook(t, books, "Dune", 1999, 5)
	return NewReviewService(reviews, books), books, book.ID
}

func TestReviewService_Create(t *testing.T) {
	svc, _, bookID := newReviewFixture(t)
	ctx := context.Background()

	review, err := svc.Create(ctx, 7, bookID, 5, "great read")
	require.NoError(t, err)
	assert.Equal(t, int64(7), review.UserID)
	assert.Equal(t, bookID, review.BookID)
	assert.Equal(t, 5, review.Rating)
}

func TestReviewService_CreateRejectsBadRating(t *testing.T) {
	svc, _, bookID := newReviewFixture(t)
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.Create(ctx, 7, bookID, rating, "")
		requireDomainCode(t, err, "VALIDATION_FAILED")
	}
}

func TestReviewService_CreateUnknownBook(t *testing.T) {
	svc, _, _ := newReviewFixture(t)

	_, err := svc.Create(context.Background(), 7, 99, 4, "")
	requireDomainCode(t, err, "NOT_FOUND")
}

func TestReviewService_OneReviewPerUserPerBook(t *testing.T) {
	svc, _, bookID := newReviewFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 7, bookID, 4, "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, 7, bookID, 2, "changed my mind")
	requireDomainCode(t, err, "DUPLICATE_RESOURCE")

	// Another user may still review the same book.
	_, err = svc.Create(ctx, 8, bookID, 3, "")
	require.NoError(t, err)
}

func TestReviewService_UpdateOwnReviewOnly(t *testing.T) {
	svc, _, bookID := newReviewFixture(t)
	ctx := context.Background()

	review, err := svc.Create(ctx, 7, bookID, 4, "fine")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 7, review.ID, 2, "worse on reread")
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)
	assert.Equal(t, "worse on reread", updated.Comment)

	_, err = svc.Update(ctx, 8, review.ID, 5, "hijack")
	requireDomainCode(t, err, "FORBIDDEN")

	_, err = svc.Update(ctx, 7, 99, 3, "")
	requireDomainCode(t, err, "NOT_FOUND")
}

func TestReviewService_DeleteOwnReviewOnly(t *testing.T) {
	svc, _, bookID := newReviewFixture(t)
	ctx := context.Background()

	review, err := svc.Create(ctx, 7, bookID, 4, "")
	require.NoError(t, err)

	err = svc.Delete(ctx, 8, review.ID)
	requireDomainCode(t, err, "FORBIDDEN")

	require.NoError(t, svc.Delete(ctx, 7, review.ID))

	err = svc.Delete(ctx, 7, review.ID)
	requireDomainCode(t, err, "NOT_FOUND")
}

func TestReviewService_ListByBook(t *testing.T) {
	svc, _, bookID := newReviewFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 7, bookID, 4, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 8, bookID, 5, "")
	require.NoError(t, err)

	reviews, err := svc.ListByBook(ctx, bookID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	reviews, err = svc.ListByBook(ctx, 99, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
