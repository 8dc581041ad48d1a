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

type CreateProductParams struct {
	Name       string
	CategoryID int64
	UnitPrice  float64
	CreatedAt  time.Time
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	FindProductByName(ctx context.Context, name string, categoryID int64) (model.Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (int64, error)
	UpdateProductUnitPrice(ctx context.Context, id int64, unitPrice float64, updatedAt time.Time) error
	// LockProduct takes a row lock on the product for the rest of the transaction.
	LockProduct(ctx context.Context, id int64) error
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

// Stock is what was received minus what was shipped.
const selectProduct = `
	SELECT
		p.id,
		p.name,
		p.category_id,
		c.name,
		p.unit_price,
		COALESCE((
			SELECT SUM(pu.quantity) FROM purchases pu
			WHERE pu.product_id = p.id AND pu.status = 2
		), 0) - COALESCE((
			SELECT SUM(o.quantity) FROM orders o
			WHERE o.product_id = p.id AND o.status = 2
		), 0) AS quantity_in_stock,
		p.created_at,
		p.updated_at
	FROM products p
	JOIN categories c ON c.id = p.category_id
`

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.CategoryID,
		&p.CategoryName,
		&p.UnitPrice,
		&p.QuantityInStock,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r productRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, selectProduct+` ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect products: %w", err)
	}

	return products, nil
}

func (r productRepository) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, selectProduct+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, ErrNotFound
		}
		return model.Product{}, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}

func (r productRepository) FindProductByName(ctx context.Context, name string, categoryID int64) (model.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx,
		selectProduct+` WHERE lower(p.name) = lower(@name) AND p.category_id = @category_id`,
		pgx.NamedArgs{
			"name":        name,
			"category_id": categoryID,
		}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, ErrNotFound
		}
		return model.Product{}, fmt.Errorf("find product by name: %w", err)
	}

	return p, nil
}

func (r productRepository) CreateProduct(ctx context.Context, params CreateProductParams) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO products (name, category_id, unit_price, created_at, updated_at)
		VALUES (@name, @category_id, @unit_price, @created_at, @created_at)
		RETURNING id
	`, pgx.NamedArgs{
		"name":        params.Name,
		"category_id": params.CategoryID,
		"unit_price":  params.UnitPrice,
		"created_at":  params.CreatedAt,
	}).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}

	return id, nil
}

func (r productRepository) UpdateProductUnitPrice(ctx context.Context, id int64, unitPrice float64, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET unit_price = $2, updated_at = $3 WHERE id = $1`,
		id, unitPrice, updatedAt)
	if err != nil {
		return fmt.Errorf("update product unit price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r productRepository) LockProduct(ctx context.Context, id int64) error {
	var locked int64
	err := r.db.QueryRow(ctx, `SELECT id FROM products WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock product: %w", err)
	}

	return nil
}
