package grocery

import (
	"context"
	"errors"
	"os"
	"testing"

	"smartshopper/internal/db"
)

func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	repo := NewPostgresRepository(pool)
	if err := repo.Seed(ctx, DefaultCatalog()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// seeding again replaces the catalog instead of conflicting
	if err := repo.Seed(ctx, DefaultCatalog()); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	milk, err := repo.Entry(ctx, "MILK")
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if len(milk.BasePrices) != 4 || milk.BasePrices[3].StoreName != "BudgetBuy" || milk.BasePrices[3].Price != 3.79 {
		t.Errorf("unexpected milk row %+v", milk)
	}

	if _, err := repo.Entry(ctx, "nonexistent"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}

	svc := NewService(repo, AllInStock)
	res, err := svc.GetPriceComparison(ctx, "milk")
	if err != nil {
		t.Fatalf("comparison: %v", err)
	}
	if res.Cheapest.Price != 3.79 || res.MostExpensive.Price != 4.49 {
		t.Errorf("unexpected spread %v..%v", res.Cheapest.Price, res.MostExpensive.Price)
	}

	names, err := repo.Names(ctx)
	if err != nil || len(names) < 20 {
		t.Errorf("expected the seeded names, got %d (%v)", len(names), err)
	}
}
