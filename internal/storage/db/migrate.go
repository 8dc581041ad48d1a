package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// Migrate applies every pending migration.
func Migrate(pool *pgxpool.Pool) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	if err := goose.Up(sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// Reset drops every object in the public schema, including goose's version
// table, and recreates the empty schema. Run Migrate afterwards.
func Reset(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, `
		DROP SCHEMA IF EXISTS public CASCADE;
		CREATE SCHEMA public;
	`); err != nil {
		return fmt.Errorf("recreate public schema: %w", err)
	}

	return nil
}

// ResetAndMigrate recreates the database from scratch.
func ResetAndMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	if err := Reset(ctx, NewClient(pool)); err != nil {
		return err
	}
	return Migrate(pool)
}
