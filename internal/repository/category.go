package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/inventory-management/internal/model"
	"github.com/tuanvumaihuynh/inventory-management/internal/storage/db"
)

type CategoryRepository interface {
	WithDB(db db.DB) CategoryRepository
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
}

type categoryRepository struct {
	db db.DB
}

func NewCategoryRepository(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r categoryRepository) WithDB(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r categoryRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Category, error) {
		var c model.Category
		err := row.Scan(&c.ID, &c.Name)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect categories: %w", err)
	}

	return categories, nil
}

func (r categoryRepository) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.db.QueryRow(ctx, `SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, ErrNotFound
		}
		return model.Category{}, fmt.Errorf("get category: %w", err)
	}

	return c, nil
}
