package grocery

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const entryRowsSQL = `
	SELECT
		i.name,
		i.category,
		i.unit,
		p.store_id,
		COALESCE(s.name, 'Unknown'),
		p.price::float8
	FROM grocery_items i
	JOIN grocery_prices p
	  ON p.item_name = i.name
	LEFT JOIN grocery_stores s
	  ON s.id = p.store_id
`

// --------------------------------------------------
// Store directory
// --------------------------------------------------
func (r *PostgresRepository) Stores(ctx context.Context) ([]Store, error) {
	rows, err := r.db.Query(ctx, `
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

// --------------------------------------------------
// Catalog entries (joined with store names)
// --------------------------------------------------
func (r *PostgresRepository) Entries(ctx context.Context) ([]CatalogEntry, error) {
	rows, err := r.db.Query(ctx, entryRowsSQL+`
		ORDER BY i.position ASC, i.name ASC, p.position ASC
	`)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func (r *PostgresRepository) Entry(ctx context.Context, name string) (*CatalogEntry, error) {
	rows, err := r.db.Query(ctx, entryRowsSQL+`
		WHERE i.name = $1
		ORDER BY p.position ASC
	`, normalize(name))
	if err != nil {
		return nil, err
	}

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrItemNotFound
	}
	return &entries[0], nil
}

func (r *PostgresRepository) Names(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT name
		FROM grocery_items
		ORDER BY position ASC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func collectEntries(rows pgx.Rows) ([]CatalogEntry, error) {
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

// --------------------------------------------------
// SEED (ATOMIC REPLACE OF THE WHOLE CATALOG)
// --------------------------------------------------

// Seed replaces every stored store, item and price with c in one transaction
func (r *PostgresRepository) Seed(ctx context.Context, c *Catalog) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range clearOrder {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, s := range c.Stores() {
		if _, err := tx.Exec(ctx, `
			INSERT INTO grocery_stores (id, name, logo, position)
			VALUES ($1, $2, NULLIF($3, ''), $4)
		`, s.ID, s.Name, s.Logo, i); err != nil {
			return fmt.Errorf("seed store %s: %w", s.ID, err)
		}
	}

	for i, e := range c.Entries() {
		if _, err := tx.Exec(ctx, `
			INSERT INTO grocery_items (name, category, unit, position)
			VALUES ($1, $2, $3, $4)
		`, e.Name, e.Category, e.Unit, i); err != nil {
			return fmt.Errorf("seed item %s: %w", e.Name, err)
		}

		for j, p := range e.BasePrices {
			if _, err := tx.Exec(ctx, `
				INSERT INTO grocery_prices (item_name, store_id, price, position)
				VALUES ($1, $2, $3, $4)
			`, e.Name, p.StoreID, p.Price, j); err != nil {
				return fmt.Errorf("seed price %s/%s: %w", e.Name, p.StoreID, err)
			}
		}
	}

	return tx.Commit(ctx)
}
