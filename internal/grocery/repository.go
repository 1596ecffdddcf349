package grocery

import "context"

// Repository is the catalog data source behind the service.
// Service depends ONLY on this interface so a real backend can replace
// the in-memory table without touching callers.
type Repository interface {
	// Store directory, in directory order
	Stores(ctx context.Context) ([]Store, error)

	// Every catalog entry, in catalog order
	Entries(ctx context.Context) ([]CatalogEntry, error)

	// Exact, case-insensitive lookup. Returns ErrItemNotFound on a miss.
	Entry(ctx context.Context, name string) (*CatalogEntry, error)

	// Normalized item names, in catalog order
	Names(ctx context.Context) ([]string, error)
}
