package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens a local catalog database and makes sure the schema exists.
// ":memory:" is pinned to one connection so every query sees the same data.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("SQLITE_PATH not set")
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite connection failed: %w", err)
	}

	if err := initSQLiteSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	log.Printf("[DB] opened SQLite catalog at %s", path)
	return db, nil
}

// connection-scoped settings, applied by the driver to every new connection
var sqlitePragmas = []string{
	"foreign_keys(1)",
	"journal_mode(WAL)",
	"busy_timeout(10000)",
}

func sqliteDSN(path string) string {
	params := make([]string, len(sqlitePragmas))
	for i, p := range sqlitePragmas {
		params[i] = "_pragma=" + p
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}

// initSQLiteSchema mirrors the Postgres catalog tables
func initSQLiteSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS grocery_stores (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			logo TEXT NULL,
			position INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS grocery_items (
			name TEXT PRIMARY KEY,
			category TEXT NOT NULL DEFAULT '',
			unit TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS grocery_prices (
			item_name TEXT NOT NULL REFERENCES grocery_items(name) ON DELETE CASCADE,
			store_id TEXT NOT NULL,
			price REAL NOT NULL CHECK (price > 0),
			position INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (item_name, store_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
