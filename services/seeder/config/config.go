package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultTimeout = 30 * time.Second

// Config holds runtime configuration for the catalog seeder.
type Config struct {
	DatabaseURL string
	CatalogPath string
	Timeout     time.Duration
	DryRun      bool
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{}

	dryRun := strings.TrimSpace(os.Getenv("DRY_RUN"))
	cfg.DryRun = dryRun == "1" || strings.EqualFold(dryRun, "true")

	// Dry runs only log, so they need no database.
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" && !cfg.DryRun {
		return cfg, errors.New("DATABASE_URL is required")
	}

	cfg.CatalogPath = strings.TrimSpace(os.Getenv("CATALOG_PATH"))

	cfg.Timeout = defaultTimeout
	if v := strings.TrimSpace(os.Getenv("SEED_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid SEED_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("invalid SEED_TIMEOUT: %s", v)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}
