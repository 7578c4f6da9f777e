package main

import (
	"context"
	"io"
	"log"
	"os/signal"
	"syscall"

	"github.com/parkshare/parkshare-web/services/web/assistant"
	"github.com/parkshare/parkshare-web/services/web/catalog"
	"github.com/parkshare/parkshare-web/services/web/config"
	"github.com/parkshare/parkshare-web/services/web/db"
	httpserver "github.com/parkshare/parkshare-web/services/web/http"
	"github.com/parkshare/parkshare-web/services/web/logging"
	"github.com/parkshare/parkshare-web/services/web/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	var logOut io.Writer
	if cfg.LogFile != "" {
		rw, out, err := logging.Setup(cfg.LogFile)
		if err != nil {
			log.Fatalf("log file error: %v", err)
		}
		defer rw.Close()
		logOut = out
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := loadCatalog(ctx, cfg)
	if err != nil {
		log.Fatalf("catalog error: %v", err)
	}
	log.Printf("catalog loaded: %d spots", store.Len())

	gemini := assistant.NewGemini(ctx, assistant.Options{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: cfg.AIRequestTimeout,
	})

	sessions := view.NewSessions(func() *view.Controller {
		return view.NewController(ctx, store, gemini, gemini)
	})
	sweeper, err := view.StartSweeper(sessions, cfg.SessionSweepInterval, cfg.SessionIdleTTL)
	if err != nil {
		log.Fatalf("session sweeper error: %v", err)
	}
	defer sweeper.Stop()

	srv := httpserver.New(cfg, store, sessions, logOut)
	log.Printf("ParkShare listening on %s (model=%s)", cfg.ListenAddr(), gemini.Model())

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// loadCatalog prefers a YAML file, then the database, then the built-in
// sample listings.
func loadCatalog(ctx context.Context, cfg config.Config) (*catalog.Store, error) {
	switch {
	case cfg.CatalogPath != "":
		return catalog.LoadFile(cfg.CatalogPath)
	case cfg.DatabaseURL != "":
		pg, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer pg.Close()
		return catalog.LoadSource(ctx, pg)
	default:
		return catalog.Default(), nil
	}
}
