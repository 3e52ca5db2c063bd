package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/petrecem/petrecem-backend/internal/adapters/cache"
	"github.com/petrecem/petrecem-backend/internal/adapters/database"
	"github.com/petrecem/petrecem-backend/internal/adapters/providers/geocoding"
	"github.com/petrecem/petrecem-backend/internal/application/services"
	"github.com/petrecem/petrecem-backend/internal/domain/providers"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/clients/postgres"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/clients/redis"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/observability"
	"github.com/petrecem/petrecem-backend/pkg/config"
)

// The reconciler walks the supplier catalog and checks that every stored
// location still geocodes. It runs sequentially against the rate-limited
// upstream service, so expect roughly one supplier per second.
func main() {
	var asJSON bool
	flag.BoolVar(&asJSON, "json", false, "print the report as JSON")
	flag.Parse()

	observability.InitLogger("petrecem-reconcile", os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// The geocode cache spares the upstream service on repeat runs.
	var cacheProvider providers.CacheProvider
	if redisClient, err := redis.NewClient(&cfg.Redis); err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, geocode results will not be cached")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var geocoder providers.GeocodingProvider
	switch cfg.Geocoding.Provider {
	case "nominatim":
		geocoder = geocoding.NewNominatimProvider(&cfg.Geocoding, cacheProvider)
	default:
		geocoder = geocoding.NewMockGeocodingProvider()
	}

	service := services.NewReconciliationService(database.NewSupplierAdapter(pgClient), geocoder)

	report, err := service.Reconcile(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("reconciliation failed")
	}

	if asJSON {
		if err := json.NewEncoder(os.Stdout).Encode(report); err != nil {
			log.Fatal().Err(err).Msg("failed to encode report")
		}
		return
	}

	log.Info().
		Int("total", report.Total).
		Int("resolved", report.Resolved).
		Int("unresolved", report.Unresolved).
		Strs("unresolved_ids", report.UnresolvedIDs).
		Msg("reconciliation report")
}
