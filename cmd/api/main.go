package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"strings"

	"smartshopper/internal/config"
	"smartshopper/internal/db"
	"smartshopper/internal/grocery"
	"smartshopper/internal/insights"
	"smartshopper/internal/router"
	"smartshopper/internal/storage"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	ctx := context.Background()

	// ───────────────────────── CATALOG SOURCE ─────────────────────────
	repo, cleanup, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ catalog source %s: %v", cfg.CatalogSource, err)
	}
	defer cleanup()

	// ───────────────────────── SERVICES ─────────────────────────
	stock := grocery.NewRandomStock(cfg.StockSeed, cfg.OutOfStockRate)
	groceryService := grocery.NewService(repo, stock)
	groceryHandler := grocery.NewHandler(groceryService)

	insightsService := insights.NewService(repo)
	insightsHandler := insights.NewHandler(insightsService)

	// ───────────────────────── ROUTES ─────────────────────────
	r := router.NewRouter(groceryHandler, insightsHandler, cfg.CORSOrigins)

	// ───────────────────────── START ─────────────────────────
	log.Printf("🚀 API running at http://localhost%s (catalog=%s)", cfg.Addr(), cfg.CatalogSource)
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// openRepository builds the catalog data source selected by CATALOG_SOURCE.
// Simulated latency only applies to the in-memory sources.
func openRepository(ctx context.Context, cfg *config.Config) (grocery.Repository, func(), error) {
	noop := func() {}

	latency := grocery.Latency{}
	if cfg.SimulatedLatency {
		latency = grocery.DefaultLatency
	}

	switch cfg.CatalogSource {
	case config.SourcePostgres:
		pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return grocery.NewPostgresRepository(pool), pool.Close, nil

	case config.SourceSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return grocery.NewSQLiteRepository(conn), func() { conn.Close() }, nil

	case config.SourceFile:
		catalog, err := grocery.LoadCatalogFile(cfg.CatalogFile)
		if err != nil {
			return nil, noop, err
		}
		log.Printf("[GROCERY] loaded %d items from %s", catalog.Len(), cfg.CatalogFile)
		return grocery.NewInMemoryRepository(catalog, latency), noop, nil

	case config.SourceR2:
		client, err := storage.NewR2Client(ctx, cfg.R2)
		if err != nil {
			return nil, noop, err
		}
		data, err := client.Download(ctx, cfg.CatalogObjectKey)
		if err != nil {
			return nil, noop, err
		}
		decode := grocery.DecodeCatalog
		if ext := strings.ToLower(path.Ext(cfg.CatalogObjectKey)); ext == ".yaml" || ext == ".yml" {
			decode = grocery.DecodeCatalogYAML
		}
		catalog, err := decode(bytes.NewReader(data))
		if err != nil {
			return nil, noop, fmt.Errorf("%s: %w", cfg.CatalogObjectKey, err)
		}
		log.Printf("[GROCERY] loaded %d items from r2://%s/%s", catalog.Len(), cfg.R2.Bucket, cfg.CatalogObjectKey)
		return grocery.NewInMemoryRepository(catalog, latency), noop, nil

	default:
		return grocery.NewInMemoryRepository(grocery.DefaultCatalog(), latency), noop, nil
	}
}
