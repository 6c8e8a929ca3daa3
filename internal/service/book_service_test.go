package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bookstore-service/internal/domain"
)

func newBookFixture() (*BookService, *fakeBookRepo, *fakeBookCache) {
	repo := newFakeBookRepo()
	cache := newFakeBookCache()
	return NewBookService(repo, cache, zap.NewNop()), repo, cache
}

func seedBook(t *testing.T, repo *fakeBookRepo, title string, priceCents int64, stock int) *domain.Book {
	t.Helper()
	book := &domain.Book{Title: title, Author: "Someone", PriceCents: priceCents, StockQuantity: stock}
	require.NoError(t, repo.Create(context.Background(), book))
	return book
}

func TestBookService_GetPopulatesCache(t *testing.T) {
	svc, repo, cache := newBookFixture()
	ctx := context.Background()
	book := seedBook(t, repo, "Dune", 1999, 5)

	got, err := svc.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, 1, repo.gets)
	assert.Equal(t, 1, cache.sets)

	// Second read is served from the cache without touching the repository.
	got, err = svc.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, 1, repo.gets)
	assert.Equal(t, 1, cache.hits)
}

func TestBookService_GetUnknownBook(t *testing.T) {
	svc, _, _ := newBookFixture()

	_, err := svc.Get(context.Background(), 99)
	requireDomainCode(t, err, "NOT_FOUND")
}

func TestBookService_UpdateInvalidatesCache(t *testing.T) {
	svc, repo, cache := newBookFixture()
	ctx := context.Background()
	book := seedBook(t, repo, "Dune", 1999, 5)

	_, err := svc.Get(ctx, book.ID)
	require.NoError(t, err)

	book.PriceCents = 2499
	require.NoError(t, svc.Update(ctx, book))
	assert.Equal(t, 1, cache.invalidations)

	got, err := svc.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2499), got.PriceCents)
}

func TestBookService_DeleteInvalidatesCache(t *testing.T) {
	svc, repo, cache := newBookFixture()
	ctx := context.Background()
	book := seedBook(t, repo, "Dune", 1999, 5)

	_, err := svc.Get(ctx, book.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, book.ID))
	assert.Equal(t, 1, cache.invalidations)

	_, err = svc.Get(ctx, book.ID)
	requireDomainCode(t, err, "NOT_FOUND")
}

func TestBookService_CreateValidation(t *testing.T) {
	svc, _, _ := newBookFixture()
	ctx := context.Background()

	err := svc.Create(ctx, &domain.Book{Author: "Someone"})
	requireDomainCode(t, err, "VALIDATION_FAILED")

	err = svc.Create(ctx, &domain.Book{Title: "Dune", Author: "Someone", PriceCents: -1})
	requireDomainCode(t, err, "VALIDATION_FAILED")

	err = svc.Create(ctx, &domain.Book{Title: "Dune", Author: "Someone", PriceCents: 1999, StockQuantity: 3})
	require.NoError(t, err)
}

func TestBookService_ListClampsPaging(t *testing.T) {
	svc, repo, _ := newBookFixture()
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		seedBook(t, repo, "Book", 100, 1)
	}

	books, err := svc.List(ctx, -5, -1)
	require.NoError(t, err)
	assert.Len(t, books, 20)

	books, err = svc.List(ctx, 10, 20)
	require.NoError(t, err)
	assert.Len(t, books, 5)
}

func TestBookService_NilCache(t *testing.T) {
	repo := newFakeBookRepo()
	svc := NewBookService(repo, nil, zap.NewNop())
	ctx := context.Background()
	book := seedBook(t, repo, "Dune", 1999, 5)

	got, err := svc.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	require.NoError(t, svc.Delete(ctx, book.ID))
}
