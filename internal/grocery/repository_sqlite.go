package grocery

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteRepository serves the catalog from a local database file
// laid out like the Postgres tables.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const sqliteEntryRowsSQL = `
	SELECT i.name, i.category, i.unit, p.store_id, COALESCE(s.name, 'Unknown'), p.price
	FROM grocery_items i
	JOIN grocery_prices p ON p.item_name = i.name
	LEFT JOIN grocery_stores s ON s.id = p.store_id
`

func (r *SQLiteRepository) Stores(ctx context.Context) ([]Store, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(logo, '')
		FROM grocery_stores
		ORDER BY position ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []Store
	for rows.Next() {
		var s Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Logo); err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

func (r *SQLiteRepository) Entries(ctx context.Context) ([]CatalogEntry, error) {
	rows, err := r.db.QueryContext(ctx, sqliteEntryRowsSQL+`
		ORDER BY i.position ASC, i.name ASC, p.position ASC
	`)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (r *SQLiteRepository) Entry(ctx context.Context, name string) (*CatalogEntry, error) {
	rows, err := r.db.QueryContext(ctx, sqliteEntryRowsSQL+`
		WHERE i.name = ?
		ORDER BY p.position ASC
	`, normalize(name))
	if err != nil {
		return nil, err
	}

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrItemNotFound
	}
	return &entries[0], nil
}

func (r *SQLiteRepository) Names(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name FROM grocery_items ORDER BY position ASC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// scanEntries is the database/sql twin of collectEntries
func scanEntries(rows *sql.Rows) ([]CatalogEntry, error) {
	defer rows.Close()

	folder := newEntryFolder()
	for rows.Next() {
		var (
			name, category, unit string
			bp                   BasePrice
		)
		if err := rows.Scan(&name, &category, &unit, &bp.StoreID, &bp.StoreName, &bp.Price); err != nil {
			return nil, err
		}
		folder.add(name, category, unit, bp)
	}
	return folder.entries, rows.Err()
}

// Seed replaces every stored store, item and price with c in one transaction
func (r *SQLiteRepository) Seed(ctx context.Context, c *Catalog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range clearOrder {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, s := range c.Stores() {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO grocery_stores (id, name, logo, position)
			VALUES (?, ?, NULLIF(?, ''), ?)
		`, s.ID, s.Name, s.Logo, i); err != nil {
			return fmt.Errorf("seed store %s: %w", s.ID, err)
		}
	}

	for i, e := range c.Entries() {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO grocery_items (name, category, unit, position)
			VALUES (?, ?, ?, ?)
		`, e.Name, e.Category, e.Unit, i); err != nil {
			return fmt.Errorf("seed item %s: %w", e.Name, err)
		}

		for j, p := range e.BasePrices {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO grocery_prices (item_name, store_id, price, position)
				VALUES (?, ?, ?, ?)
			`, e.Name, p.StoreID, p.Price, j); err != nil {
				return fmt.Errorf("seed price %s/%s: %w", e.Name, p.StoreID, err)
			}
		}
	}

	return tx.Commit()
}
