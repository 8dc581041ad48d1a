package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/internal/storage/db"
)

type CreateOrderParams struct {
	ProductID    int64
	CustomerName string
	Quantity     float64
	UnitPrice    float64
	OrderDate    time.Time
	Status       model.OrderStatus
	CreatedAt    time.Time
}

type OrderRepository interface {
	WithDB(db db.DB) OrderRepository
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id int64) (model.Order, error)
	// GetOrderForUpdate reads the order and locks its row for the rest of the transaction.
	GetOrderForUpdate(ctx context.Context, id int64) (model.Order, error)
	CreateOrder(ctx context.Context, params CreateOrderParams) (int64, error)
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus, updatedAt time.Time) error
}

type orderRepository struct {
	db db.DB
}

func NewOrderRepository(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r orderRepository) WithDB(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

const selectOrder = `
	SELECT
		o.id,
		o.product_id,
		p.name,
		c.name,
		o.customer_name,
		o.quantity,
		o.unit_price,
		o.order_date,
		o.status,
		o.created_at,
		o.updated_at
	FROM orders o
	JOIN products p ON p.id = o.product_id
	JOIN categories c ON c.id = p.category_id
`

func scanOrder(row pgx.Row) (model.Order, error) {
	var (
		o         model.Order
		orderDate time.Time
		status    int16
	)
	err := row.Scan(
		&o.ID,
		&o.ProductID,
		&o.ProductName,
		&o.CategoryName,
		&o.CustomerName,
		&o.Quantity,
		&o.UnitPrice,
		&orderDate,
		&status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return model.Order{}, err
	}

	o.OrderDate = model.NewDate(orderDate)
	//nolint:gosec
	o.Status = model.OrderStatus(status)
	o.TotalPrice = o.Quantity * o.UnitPrice

	return o, nil
}

func (r orderRepository) ListOrders(ctx context.Context) ([]model.Order, error) {
	rows, err := r.db.Query(ctx, selectOrder+` ORDER BY o.id`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Order, error) {
		return scanOrder(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect orders: %w", err)
	}

	return orders, nil
}

func (r orderRepository) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	return r.getOrder(ctx, selectOrder+` WHERE o.id = $1`, id)
}

func (r orderRepository) GetOrderForUpdate(ctx context.Context, id int64) (model.Order, error) {
	return r.getOrder(ctx, selectOrder+` WHERE o.id = $1 FOR UPDATE OF o`, id)
}

func (r orderRepository) getOrder(ctx context.Context, query string, id int64) (model.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, ErrNotFound
		}
		return model.Order{}, fmt.Errorf("get order: %w", err)
	}

	return o, nil
}

func (r orderRepository) CreateOrder(ctx context.Context, params CreateOrderParams) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO orders (
			product_id, customer_name, quantity, unit_price,
			order_date, status, created_at, updated_at
		)
		VALUES (
			@product_id, @customer_name, @quantity, @unit_price,
			@order_date, @status, @created_at, @created_at
		)
		RETURNING id
	`, pgx.NamedArgs{
		"product_id":    params.ProductID,
		"customer_name": params.CustomerName,
		"quantity":      params.Quantity,
		"unit_price":    params.UnitPrice,
		"order_date":    params.OrderDate,
		"status":        int16(params.Status),
		"created_at":    params.CreatedAt,
	}).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	return id, nil
}

func (r orderRepository) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, int16(status), updatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
