package main

import (
	"bytes"
	"context"
	"flag"
	"log"

	"smartshopper/internal/config"
	"smartshopper/internal/db"
	"smartshopper/internal/grocery"
	"smartshopper/internal/storage"
)

// catalog-seed publishes a catalog (CATALOG_FILE, or the reference table)
// to Postgres, SQLite and/or an R2 bucket so the API can serve it from there.
func main() {
	toPostgres := flag.Bool("postgres", false, "replace the catalog in DATABASE_URL")
	toSQLite := flag.Bool("sqlite", false, "replace the catalog in SQLITE_PATH")
	toR2 := flag.Bool("r2", false, "upload the catalog snapshot to CATALOG_OBJECT_KEY")
	flag.Parse()

	if !*toPostgres && !*toSQLite && !*toR2 {
		log.Fatal("nothing to do: pass -postgres, -sqlite and/or -r2")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	catalog := grocery.DefaultCatalog()
	if cfg.CatalogFile != "" {
		if catalog, err = grocery.LoadCatalogFile(cfg.CatalogFile); err != nil {
			log.Fatalf("❌ catalog file: %v", err)
		}
	}
	log.Printf("[SEED] catalog has %d items", catalog.Len())

	ctx := context.Background()

	if *toPostgres {
		pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ postgres: %v", err)
		}
		defer pool.Close()

		if err := grocery.NewPostgresRepository(pool).Seed(ctx, catalog); err != nil {
			log.Fatalf("❌ seed postgres: %v", err)
		}
		log.Println("[SEED] ✅ postgres catalog replaced")
	}

	if *toSQLite {
		conn, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			log.Fatalf("❌ sqlite: %v", err)
		}
		defer conn.Close()

		if err := grocery.NewSQLiteRepository(conn).Seed(ctx, catalog); err != nil {
			log.Fatalf("❌ seed sqlite: %v", err)
		}
		log.Printf("[SEED] ✅ sqlite catalog replaced at %s", cfg.SQLitePath)
	}

	if *toR2 {
		client, err := storage.NewR2Client(ctx, cfg.R2)
		if err != nil {
			log.Fatalf("❌ r2: %v", err)
		}

		var buf bytes.Buffer
		if err := grocery.EncodeCatalog(&buf, catalog); err != nil {
			log.Fatalf("❌ encode catalog: %v", err)
		}
		if err := client.Upload(ctx, cfg.CatalogObjectKey, buf.Bytes(), "application/json"); err != nil {
			log.Fatalf("❌ upload: %v", err)
		}
		log.Printf("[SEED] ✅ uploaded r2://%s/%s", cfg.R2.Bucket, cfg.CatalogObjectKey)
	}
}
