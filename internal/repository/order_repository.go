package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bookstore-service/internal/domain"
)

// OrderRepository encapsulates order persistence. Create runs the order
// insert, item inserts, and stock decrements in one transaction.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error)
	List(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	Count(ctx context.Context) (int64, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const orderQuery = `
        INSERT INTO orders (user_id, reference, total_price_cents, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`

	if err := tx.QueryRow(ctx, orderQuery,
		order.UserID,
		order.Reference,
		order.TotalPriceCents,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	const itemQuery = `
        INSERT INTO order_items (order_id, book_id, quantity, unit_price_cents)
        VALUES ($1,$2,$3,$4)
        RETURNING id`

	const stockQuery = `
        UPDATE books SET stock_quantity = stock_quantity - $1, updated_at=NOW()
        WHERE id=$2 AND stock_quantity >= $1`

	for idx := range order.Items {
		item := &order.Items[idx]
		item.OrderID = order.ID

		if err := tx.QueryRow(ctx, itemQuery,
			item.OrderID,
			item.BookID,
			item.Quantity,
			item.UnitPriceCents,
		).Scan(&item.ID); err != nil {
			return err
		}

		cmd, err := tx.Exec(ctx, stockQuery, item.Quantity, item.BookID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const query = `
        SELECT id, user_id, reference, total_price_cents, status, created_at
        FROM orders WHERE id=$1`

	var order domain.Order
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.Reference,
		&order.TotalPriceCents,
		&order.Status,
		&order.CreatedAt,
	); err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	const query = `
        SELECT id, user_id, reference, total_price_cents, status, created_at
        FROM orders WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Reference,
			&order.TotalPriceCents,
			&order.Status,
			&order.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for idx := range orders {
		items, err := r.loadItems(ctx, orders[idx].ID)
		if err != nil {
			return nil, err
		}
		orders[idx].Items = items
	}
	return orders, nil
}

// List returns a page over all orders, optionally filtered by status. Empty
// status means no filter.
func (r *orderRepository) List(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]domain.Order, error) {
	const base = `
        SELECT id, user_id, reference, total_price_cents, status, created_at
        FROM orders`

	var (
		rows pgx.Rows
		err  error
	)
	if status == "" {
		rows, err = r.pool.Query(ctx, base+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	} else {
		rows, err = r.pool.Query(ctx, base+` WHERE status=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, status, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Reference,
			&order.TotalPriceCents,
			&order.Status,
			&order.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for idx := range orders {
		items, err := r.loadItems(ctx, orders[idx].ID)
		if err != nil {
			return nil, err
		}
		orders[idx].Items = items
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	const query = `
        SELECT id, order_id, book_id, quantity, unit_price_cents
        FROM order_items WHERE order_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.BookID,
			&item.Quantity,
			&item.UnitPriceCents,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
