package config

import (
	"strings"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.CatalogSource != SourceMemory {
		t.Errorf("expected memory source, got %s", cfg.CatalogSource)
	}
	if cfg.Addr() != ":8000" {
		t.Errorf("expected :8000, got %s", cfg.Addr())
	}
	if !cfg.SimulatedLatency {
		t.Error("expected simulated latency on by default")
	}
	if cfg.OutOfStockRate != 0.1 {
		t.Errorf("expected out-of-stock rate 0.1, got %v", cfg.OutOfStockRate)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Errorf("expected no origins, got %v", cfg.CORSOrigins)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"PORT":              "9090",
		"SIMULATED_LATENCY": "false",
		"STOCK_SEED":        "42",
		"OUT_OF_STOCK_RATE": "0",
		"CORS_ORIGINS":      "http://localhost:3000, http://localhost:5173,",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" || cfg.SimulatedLatency || cfg.StockSeed != 42 || cfg.OutOfStockRate != 0 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://localhost:5173" {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
}

func TestFromEnv_SourceRequirements(t *testing.T) {
	cases := map[string]map[string]string{
		"file without path":      {"CATALOG_SOURCE": "file"},
		"postgres without dsn":   {"CATALOG_SOURCE": "postgres"},
		"sqlite without path":    {"CATALOG_SOURCE": "sqlite"},
		"r2 without credentials": {"CATALOG_SOURCE": "r2", "R2_ENDPOINT": "https://r2"},
		"unknown source":         {"CATALOG_SOURCE": "mongo"},
		"bad rate":               {"OUT_OF_STOCK_RATE": "1.5"},
		"bad seed":               {"STOCK_SEED": "-1"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := FromEnv(envMap(env)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestFromEnv_PostgresSource(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"CATALOG_SOURCE": "Postgres",
		"DATABASE_URL":   "postgres://localhost/grocery",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CatalogSource != SourcePostgres {
		t.Errorf("expected postgres, got %s", cfg.CatalogSource)
	}
}

func TestFromEnv_R2NamesFirstMissingKey(t *testing.T) {
	env := envMap(map[string]string{
		"CATALOG_SOURCE": "r2",
		"R2_ENDPOINT":    "https://account.r2.cloudflarestorage.com",
	})

	for i := 0; i < 20; i++ {
		_, err := FromEnv(env)
		if err == nil || !strings.HasPrefix(err.Error(), "R2_ACCESS_KEY ") {
			t.Fatalf("expected R2_ACCESS_KEY to be reported first, got %v", err)
		}
	}
}
