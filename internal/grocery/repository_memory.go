package grocery

import (
	"context"
	"time"
)

// Latency is the simulated round-trip per repository call.
// The zero value answers immediately.
type Latency struct {
	Stores  time.Duration
	Entries time.Duration
	Entry   time.Duration
	Names   time.Duration
}

// DefaultLatency mirrors the delays the UI was built against
var DefaultLatency = Latency{
	Stores:  100 * time.Millisecond,
	Entries: 300 * time.Millisecond,
	Entry:   200 * time.Millisecond,
	Names:   100 * time.Millisecond,
}

type InMemoryRepository struct {
	catalog *Catalog
	latency Latency
}

func NewInMemoryRepository(catalog *Catalog, latency Latency) *InMemoryRepository {
	return &InMemoryRepository{
		catalog: catalog,
		latency: latency,
	}
}

func (r *InMemoryRepository) Stores(ctx context.Context) ([]Store, error) {
	if err := wait(ctx, r.latency.Stores); err != nil {
		return nil, err
	}
	return r.catalog.Stores(), nil
}

func (r *InMemoryRepository) Entries(ctx context.Context) ([]CatalogEntry, error) {
	if err := wait(ctx, r.latency.Entries); err != nil {
		return nil, err
	}
	return r.catalog.Entries(), nil
}

func (r *InMemoryRepository) Entry(ctx context.Context, name string) (*CatalogEntry, error) {
	if err := wait(ctx, r.latency.Entry); err != nil {
		return nil, err
	}
	entry, ok := r.catalog.Lookup(name)
	if !ok {
		return nil, ErrItemNotFound
	}
	return &entry, nil
}

func (r *InMemoryRepository) Names(ctx context.Context) ([]string, error) {
	if err := wait(ctx, r.latency.Names); err != nil {
		return nil, err
	}
	return r.catalog.Names(), nil
}

// wait sleeps for d unless ctx ends first
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
