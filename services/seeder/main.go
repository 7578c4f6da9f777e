package main

import (
	"context"
	"log"

	"github.com/parkshare/parkshare-web/services/seeder/config"
	"github.com/parkshare/parkshare-web/services/web/catalog"
	"github.com/parkshare/parkshare-web/services/web/db"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seeder failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	var store *catalog.Store
	if cfg.CatalogPath != "" {
		if store, err = catalog.LoadFile(cfg.CatalogPath); err != nil {
			return err
		}
		log.Printf("loaded %d spots from %s", store.Len(), cfg.CatalogPath)
	} else {
		store = catalog.Default()
		log.Printf("no CATALOG_PATH set; seeding %d sample spots", store.Len())
	}

	spots := store.List()
	if cfg.DryRun {
		for i, sp := range spots {
			log.Printf("dry-run: would upsert spot=%s position=%d title=%q price=%.2f", sp.ID, i, sp.Title, sp.PricePerHour)
		}
		return nil
	}

	pg, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := pg.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := pg.UpsertSpots(ctx, spots); err != nil {
		return err
	}

	log.Printf("upserted %d spots", len(spots))
	return nil
}
