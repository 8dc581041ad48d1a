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

type CreatePurchaseParams struct {
	ProductID    int64
	SupplierName string
	Quantity     float64
	UnitPrice    float64
	PurchaseDate time.Time
	Status       model.PurchaseStatus
	CreatedAt    time.Time
}

type PurchaseRepository interface {
	WithDB(db db.DB) PurchaseRepository
	ListPurchases(ctx context.Context) ([]model.Purchase, error)
	GetPurchase(ctx context.Context, id int64) (model.Purchase, error)
	// GetPurchaseForUpdate reads the purchase and locks its row for the rest of the transaction.
	GetPurchaseForUpdate(ctx context.Context, id int64) (model.Purchase, error)
	CreatePurchase(ctx context.Context, params CreatePurchaseParams) (int64, error)
	UpdatePurchaseStatus(ctx context.Context, id int64, status model.PurchaseStatus, updatedAt time.Time) error
}

type purchaseRepository struct {
	db db.DB
}

func NewPurchaseRepository(db db.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r purchaseRepository) WithDB(db db.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

const selectPurchase = `
	SELECT
		pu.id,
		pu.product_id,
		p.name,
		p.category_id,
		c.name,
		pu.supplier_name,
		pu.quantity,
		pu.unit_price,
		pu.purchase_date,
		pu.status,
		pu.created_at,
		pu.updated_at
	FROM purchases pu
	JOIN products p ON p.id = pu.product_id
	JOIN categories c ON c.id = p.category_id
`

func scanPurchase(row pgx.Row) (model.Purchase, error) {
	var (
		p            model.Purchase
		purchaseDate time.Time
		status       int16
	)
	err := row.Scan(
		&p.ID,
		&p.ProductID,
		&p.ProductName,
		&p.CategoryID,
		&p.CategoryName,
		&p.SupplierName,
		&p.Quantity,
		&p.UnitPrice,
		&purchaseDate,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return model.Purchase{}, err
	}

	p.PurchaseDate = model.NewDate(purchaseDate)
	//nolint:gosec
	p.Status = model.PurchaseStatus(status)

	return p, nil
}

func (r purchaseRepository) ListPurchases(ctx context.Context) ([]model.Purchase, error) {
	rows, err := r.db.Query(ctx, selectPurchase+` ORDER BY pu.id`)
	if err != nil {
		return nil, fmt.Errorf("query purchases: %w", err)
	}

	purchases, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Purchase, error) {
		return scanPurchase(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect purchases: %w", err)
	}

	return purchases, nil
}

func (r purchaseRepository) GetPurchase(ctx context.Context, id int64) (model.Purchase, error) {
	return r.getPurchase(ctx, selectPurchase+` WHERE pu.id = $1`, id)
}

func (r purchaseRepository) GetPurchaseForUpdate(ctx context.Context, id int64) (model.Purchase, error) {
	return r.getPurchase(ctx, selectPurchase+` WHERE pu.id = $1 FOR UPDATE OF pu`, id)
}

func (r purchaseRepository) getPurchase(ctx context.Context, query string, id int64) (model.Purchase, error) {
	p, err := scanPurchase(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Purchase{}, ErrNotFound
		}
		return model.Purchase{}, fmt.Errorf("get purchase: %w", err)
	}

	return p, nil
}

func (r purchaseRepository) CreatePurchase(ctx context.Context, params CreatePurchaseParams) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO purchases (
			product_id, supplier_name, quantity, unit_price,
			purchase_date, status, created_at, updated_at
		)
		VALUES (
			@product_id, @supplier_name, @quantity, @unit_price,
			@purchase_date, @status, @created_at, @created_at
		)
		RETURNING id
	`, pgx.NamedArgs{
		"product_id":    params.ProductID,
		"supplier_name": params.SupplierName,
		"quantity":      params.Quantity,
		"unit_price":    params.UnitPrice,
		"purchase_date": params.PurchaseDate,
		"status":        int16(params.Status),
		"created_at":    params.CreatedAt,
	}).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert purchase: %w", err)
	}

	return id, nil
}

func (r purchaseRepository) UpdatePurchaseStatus(ctx context.Context, id int64, status model.PurchaseStatus, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE purchases SET status = $2, updated_at = $3 WHERE id = $1`,
		id, int16(status), updatedAt)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
