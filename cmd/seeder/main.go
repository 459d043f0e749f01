// Command seeder imports a YAML catalog of books through the book service.
// Entries run one at a time; transient embedding failures are retried with
// exponential backoff, duplicates by ISBN are skipped.
//
// Flags:
//
//	--catalog   path to the catalog YAML file (overrides seeder.catalog_path)
//	--dry-run   run the full pipeline against in-memory storage
//
// Exit codes: 0 = success, 1 = any entry failed or setup error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/bookshelf-backend/internal/app"
	"github.com/heartmarshall/bookshelf-backend/internal/app/seeder"
	"github.com/heartmarshall/bookshelf-backend/internal/config"
)

func main() {
	catalogFlag := flag.String("catalog", "", "path to catalog YAML file")
	dryRunFlag := flag.Bool("dry-run", false, "import into in-memory storage instead of PostgreSQL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger("seeder", cfg.Log)
	app.LogStartup(logger, cfg)

	// CLI flags override config.
	if *catalogFlag != "" {
		cfg.Seeder.CatalogPath = *catalogFlag
	}
	if *dryRunFlag {
		cfg.Seeder.DryRun = true
	}

	books, err := seeder.LoadCatalog(cfg.Seeder.CatalogPath)
	if err != nil {
		logger.Error("load catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("catalog loaded",
		slog.String("path", cfg.Seeder.CatalogPath),
		slog.Int("books", len(books)),
		slog.Bool("dry_run", cfg.Seeder.DryRun),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := app.NewCatalog(ctx, cfg, logger, app.Options{InMemory: cfg.Seeder.DryRun})
	if err != nil {
		logger.Error("init catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer catalog.Close()

	pipeline := seeder.NewPipeline(logger, catalog.Books, cfg.Seeder)
	res, err := pipeline.Run(ctx, books)
	if err != nil {
		logger.Error("seeder interrupted", slog.String("error", err.Error()))
		catalog.Close()
		os.Exit(1)
	}

	if res.HasErrors() {
		for _, f := range res.Failures {
			logger.Warn("failed entry",
				slog.Int("index", f.Index),
				slog.String("title", f.Title),
				slog.String("error", f.Err.Error()),
			)
		}
		catalog.Close()
		os.Exit(1)
	}

	logger.Info("seeder completed successfully")
}
