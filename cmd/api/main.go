package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/petrecem/petrecem-backend/internal/adapters/cache"
	"github.com/petrecem/petrecem-backend/internal/adapters/database"
	"github.com/petrecem/petrecem-backend/internal/adapters/events"
	"github.com/petrecem/petrecem-backend/internal/adapters/providers/geocoding"
	"github.com/petrecem/petrecem-backend/internal/adapters/search"
	"github.com/petrecem/petrecem-backend/internal/api/handlers"
	"github.com/petrecem/petrecem-backend/internal/api/middleware"
	"github.com/petrecem/petrecem-backend/internal/api/routes"
	"github.com/petrecem/petrecem-backend/internal/application/services"
	"github.com/petrecem/petrecem-backend/internal/domain/providers"
	"github.com/petrecem/petrecem-backend/internal/domain/repositories"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/clients/postgres"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/clients/redis"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/clients/typesense"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/observability"
	"github.com/petrecem/petrecem-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Warn().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Redis is optional: without it the API runs uncached and without the
	// analytics event bus.
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	var searchRepo repositories.SupplierSearchRepository
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Typesense client, keyword search falls back to database")
	} else {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = adapter
		log.Info().Msg("Typesense client initialized")
	}

	baseSupplierAdapter := database.NewSupplierAdapter(pgClient)
	var supplierRepo repositories.SupplierRepository
	if cacheProvider != nil {
		supplierRepo = database.NewCachedSupplierAdapter(baseSupplierAdapter, cacheProvider)
	} else {
		supplierRepo = baseSupplierAdapter
	}

	availabilityRepo := database.NewAvailabilityAdapter(pgClient)
	categoryRepo := database.NewCategoryAdapter(pgClient)
	analyticsRepo := database.NewSearchAnalyticsAdapter(pgClient)

	var geocoder providers.GeocodingProvider
	switch cfg.Geocoding.Provider {
	case "nominatim":
		geocoder = geocoding.NewNominatimProvider(&cfg.Geocoding, cacheProvider)
	default:
		log.Warn().Str("provider", cfg.Geocoding.Provider).Msg("unknown geocoding provider, using mock")
		geocoder = geocoding.NewMockGeocodingProvider()
	}

	searchService := services.NewSearchService(
		supplierRepo,
		geocoder,
		services.NewSupplierLocator(services.DefaultMobilityPolicy()),
		services.NewRadiusMatcher(),
		services.NewAvailabilityFilter(availabilityRepo),
		eventBus,
		metrics,
	)
	supplierService := services.NewSupplierService(supplierRepo, searchRepo, availabilityRepo)
	analyticsService := services.NewAnalyticsService(analyticsRepo, eventBus)

	// Persist search events published on the bus.
	if eventBus != nil {
		go func() {
			if err := analyticsService.Run(ctx); err != nil && ctx.Err() == nil {
				log.Warn().Err(err).Msg("analytics subscriber stopped")
			}
		}()
	}

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
	}

	router := routes.NewRouter(
		handlers.NewSearchHandler(searchService),
		handlers.NewSupplierHandler(supplierService),
		handlers.NewCategoryHandler(categoryRepo),
		handlers.NewGeocodingHandler(geocoder),
		handlers.NewAnalyticsHandler(analyticsService),
		cacheMiddleware,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}
