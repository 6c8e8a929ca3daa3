package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/bookstore-service/internal/domain"
)

// ErrCacheMiss signals an absent or unusable cache entry.
var ErrCacheMiss = errors.New("cache miss")

const bookKeyPrefix = "book:"

// BookCache keeps catalog reads off the database. Entries are TTL-bounded
// and invalidated on admin writes; a cold or unreachable cache degrades to
// plain repository reads.
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache builds a cache over the shared Redis client.
func NewBookCache(r *Redis, ttl time.Duration) *BookCache {
	if r == nil {
		return &BookCache{client: nil, ttl: ttl}
	}
	return &BookCache{client: r.Client, ttl: ttl}
}

// Get returns the cached book or ErrCacheMiss.
func (c *BookCache) Get(ctx context.Context, bookID int64) (*domain.Book, error) {
	if c == nil || c.client == nil {
		return nil, ErrCacheMiss
	}

	raw, err := c.client.Get(ctx, bookKey(bookID)).Bytes()
	if err != nil {
		return nil, ErrCacheMiss
	}

	var book domain.Book
	if err := json.Unmarshal(raw, &book); err != nil {
		return nil, ErrCacheMiss
	}
	return &book, nil
}

// Set stores the book under its id for the configured TTL.
func (c *BookCache) Set(ctx context.Context, book *domain.Book) error {
	if c == nil || c.client == nil || book == nil {
		return nil
	}

	raw, err := json.Marshal(book)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, bookKey(book.ID), raw, c.ttl).Err()
}

// Invalidate drops the cached entry after a write.
func (c *BookCache) Invalidate(ctx context.Context, bookID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, bookKey(bookID)).Err()
}

func bookKey(id int64) string {
	return bookKeyPrefix + strconv.FormatInt(id, 10)
}
