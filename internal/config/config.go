package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"smartshopper/internal/storage"

	"github.com/joho/godotenv"
)

// Catalog sources
const (
	SourceMemory   = "memory"
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
	SourceR2       = "r2"
)

type Config struct {
	AppEnv string
	Port   string

	CatalogSource    string
	CatalogFile      string
	CatalogObjectKey string
	DatabaseURL      string
	SQLitePath       string
	R2               storage.R2Config

	SimulatedLatency bool
	StockSeed        uint64
	OutOfStockRate   float64
	CORSOrigins      []string
}

// Load reads .env (outside production) and then the environment
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("[CONFIG] no .env file found, using environment variables")
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from any lookup function and validates it
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		AppEnv:           get("APP_ENV", "development"),
		Port:             get("PORT", "8000"),
		CatalogSource:    strings.ToLower(get("CATALOG_SOURCE", SourceMemory)),
		CatalogFile:      get("CATALOG_FILE", ""),
		CatalogObjectKey: get("CATALOG_OBJECT_KEY", "catalog/latest.json"),
		DatabaseURL:      get("DATABASE_URL", ""),
		SQLitePath:       get("SQLITE_PATH", ""),
		R2: storage.R2Config{
			Endpoint:  get("R2_ENDPOINT", ""),
			AccessKey: get("R2_ACCESS_KEY", ""),
			SecretKey: get("R2_SECRET_KEY", ""),
			Bucket:    get("R2_BUCKET_NAME", ""),
		},
		CORSOrigins: splitList(get("CORS_ORIGINS", "")),
	}

	var err error
	if cfg.SimulatedLatency, err = strconv.ParseBool(get("SIMULATED_LATENCY", "true")); err != nil {
		return nil, fmt.Errorf("SIMULATED_LATENCY: %w", err)
	}
	if cfg.OutOfStockRate, err = strconv.ParseFloat(get("OUT_OF_STOCK_RATE", "0.1"), 64); err != nil {
		return nil, fmt.Errorf("OUT_OF_STOCK_RATE: %w", err)
	}
	if cfg.OutOfStockRate < 0 || cfg.OutOfStockRate > 1 {
		return nil, errors.New("OUT_OF_STOCK_RATE must be between 0 and 1")
	}

	seed := get("STOCK_SEED", "")
	if seed == "" {
		cfg.StockSeed = uint64(time.Now().UnixNano())
	} else if cfg.StockSeed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return nil, fmt.Errorf("STOCK_SEED: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate only demands the keys of the selected catalog source
func (c *Config) validate() error {
	switch c.CatalogSource {
	case SourceMemory:
	case SourceFile:
		if c.CatalogFile == "" {
			return errors.New("CATALOG_FILE is required for the file catalog source")
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres catalog source")
		}
	case SourceSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite catalog source")
		}
	case SourceR2:
		required := []struct{ key, value string }{
			{"R2_ENDPOINT", c.R2.Endpoint},
			{"R2_ACCESS_KEY", c.R2.AccessKey},
			{"R2_SECRET_KEY", c.R2.SecretKey},
			{"R2_BUCKET_NAME", c.R2.Bucket},
		}
		for _, r := range required {
			if r.value == "" {
				return fmt.Errorf("%s is required for the r2 catalog source", r.key)
			}
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
