package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bookstore-service/internal/domain"
	"github.com/spec-kit/bookstore-service/internal/events"
	"github.com/spec-kit/bookstore-service/internal/repository"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for id := int64(1); id <= r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			out = append(out, user)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) delete(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

type fakeResetRepo struct {
	mu     sync.Mutex
	nextID int64
	tokens map[string]repository.PasswordResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[string]repository.PasswordResetToken)}
}

func (r *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	token.ID = strconv.FormatInt(r.nextID, 10)
	token.CreatedAt = time.Now()
	r.tokens[token.Token] = *token
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, token string) (*repository.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[token]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &stored, nil
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, stored := range r.tokens {
		if stored.ID == id {
			now := time.Now()
			stored.UsedAt = &now
			r.tokens[key] = stored
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeBookRepo struct {
	mu     sync.Mutex
	nextID int64
	books  map[int64]domain.Book
	gets   int
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[int64]domain.Book)}
}

func (r *fakeBookRepo) Create(_ context.Context, book *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	book.ID = r.nextID
	r.books[book.ID] = *book
	return nil
}

func (r *fakeBookRepo) Update(_ context.Context, book *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[book.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.books[book.ID] = *book
	return nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) GetByID(_ context.Context, id int64) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	book, ok := r.books[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &book, nil
}

func (r *fakeBookRepo) List(_ context.Context, limit, offset int) ([]domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Book
	for id := int64(1); id <= r.nextID; id++ {
		if book, ok := r.books[id]; ok {
			out = append(out, book)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeBookRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.books)), nil
}

var errCacheMiss = errors.New("cache miss")

type fakeBookCache struct {
	mu            sync.Mutex
	entries       map[int64]domain.Book
	hits          int
	sets          int
	invalidations int
}

func newFakeBookCache() *fakeBookCache {
	return &fakeBookCache{entries: make(map[int64]domain.Book)}
}

func (c *fakeBookCache) Get(_ context.Context, bookID int64) (*domain.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	book, ok := c.entries[bookID]
	if !ok {
		return nil, errCacheMiss
	}
	c.hits++
	return &book, nil
}

func (c *fakeBookCache) Set(_ context.Context, book *domain.Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[book.ID] = *book
	return nil
}

func (c *fakeBookCache) Invalidate(_ context.Context, bookID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	delete(c.entries, bookID)
	return nil
}

type fakeOrderRepo struct {
	mu        sync.Mutex
	nextID    int64
	orders    map[int64]domain.Order
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]domain.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	order.ID = r.nextID
	order.CreatedAt = time.Now()
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &order, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for id := r.nextID; id >= 1; id-- {
		if order, ok := r.orders[id]; ok && order.UserID == userID {
			out = append(out, order)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeOrderRepo) List(_ context.Context, status domain.OrderStatus, limit, offset int) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for id := r.nextID; id >= 1; id-- {
		if order, ok := r.orders[id]; ok && (status == "" || order.Status == status) {
			out = append(out, order)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	order.Status = status
	r.orders[id] = order
	return nil
}

func (r *fakeOrderRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	nextID  int64
	reviews map[int64]domain.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[int64]domain.Review)}
}

func (r *fakeReviewRepo) Create(_ context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	review.ID = r.nextID
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	r.reviews[review.ID] = *review
	return nil
}

func (r *fakeReviewRepo) Update(_ context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.ID]; !ok {
		return pgx.ErrNoRows
	}
	review.UpdatedAt = time.Now()
	r.reviews[review.ID] = *review
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id int64) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &review, nil
}

func (r *fakeReviewRepo) ListByBook(_ context.Context, bookID int64, limit, offset int) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Review
	for id := int64(1); id <= r.nextID; id++ {
		if review, ok := r.reviews[id]; ok && review.BookID == bookID {
			out = append(out, review)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeReviewRepo) ExistsByBookAndUser(_ context.Context, bookID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, review := range r.reviews {
		if review.BookID == bookID && review.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}
