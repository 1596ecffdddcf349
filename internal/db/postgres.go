package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectPostgres opens a pool against dsn and makes sure the catalog
// schema exists
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	log.Println("[DB] connected to PostgreSQL")

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return db, nil
}

// initSchema creates the catalog tables. Positions preserve table order.
func initSchema(ctx context.Context, db *pgxpool.Pool) error {

	// -------------------------------
	// STORES
	// -------------------------------
	storesSQL := `
		CREATE TABLE IF NOT EXISTS grocery_stores (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			logo TEXT NULL,
			position INT NOT NULL DEFAULT 0
		)
	`
	if _, err := db.Exec(ctx, storesSQL); err != nil {
		return err
	}

	// -------------------------------
	// ITEMS
	// -------------------------------
	itemsSQL := `
		CREATE TABLE IF NOT EXISTS grocery_items (
			name TEXT PRIMARY KEY,
			category TEXT NOT NULL DEFAULT '',
			unit TEXT NOT NULL,
			position INT NOT NULL DEFAULT 0
		)
	`
	if _, err := db.Exec(ctx, itemsSQL); err != nil {
		return err
	}

	// -------------------------------
	// BASE PRICES
	// -------------------------------
	pricesSQL := `
		CREATE TABLE IF NOT EXISTS grocery_prices (
			item_name TEXT NOT NULL REFERENCES grocery_items(name) ON DELETE CASCADE,
			store_id TEXT NOT NULL,
			price NUMERIC(10, 2) NOT NULL CHECK (price > 0),
			position INT NOT NULL DEFAULT 0,
			PRIMARY KEY (item_name, store_id)
		)
	`
	if _, err := db.Exec(ctx, pricesSQL); err != nil {
		return err
	}

	log.Println("[DB] schema initialized")
	return nil
}
