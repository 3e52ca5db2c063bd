package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/petrecem/petrecem-backend/internal/adapters/database"
	"github.com/petrecem/petrecem-backend/internal/adapters/search"
	"github.com/petrecem/petrecem-backend/internal/domain/repositories"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/clients/postgres"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/clients/typesense"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/observability"
	"github.com/petrecem/petrecem-backend/pkg/config"
)

// The indexer rebuilds the Typesense suppliers collection from Postgres.
// Run it once for a full reindex, or with -interval for periodic refresh.
func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	observability.InitLogger("petrecem-indexer", os.Getenv("APP_ENV"))

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		parsed, err := time.ParseDuration(intervalValue)
		if err != nil || parsed <= 0 {
			log.Fatal().Str("interval", intervalValue).Msg("interval must be a positive duration")
		}
		interval = parsed
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Error().Err(err).Msg("reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Info().Dur("interval", interval).Msg("reindex complete, waiting for next run")

		select {
		case <-ctx.Done():
			log.Info().Msg("reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	supplierRepo := database.NewSupplierAdapter(pgClient)

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}
	adapter := search.NewTypesenseAdapter(tsClient)

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Info().Msg("deleting suppliers collection before reindex")
		if _, err := tsClient.Client().Collection(typesense.SuppliersCollection).Delete(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to delete collection")
		}
	}

	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	suppliers, err := supplierRepo.List(ctx, repositories.SupplierFilter{Limit: 5000})
	if err != nil {
		return err
	}

	log.Info().Int("count", len(suppliers)).Msg("indexing suppliers")

	indexed := 0
	for _, supplier := range suppliers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := adapter.Index(ctx, supplier); err != nil {
			log.Warn().Err(err).Str("supplier_id", supplier.ID).Msg("failed to index supplier")
			continue
		}
		indexed++
	}

	log.Info().Int("indexed", indexed).Int("total", len(suppliers)).Msg("reindex finished")
	return nil
}
