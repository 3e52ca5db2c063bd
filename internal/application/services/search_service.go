package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/internal/domain/providers"
	"github.com/petrecem/petrecem-backend/internal/domain/repositories"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/observability"
	apperrors "github.com/petrecem/petrecem-backend/pkg/errors"
	"github.com/petrecem/petrecem-backend/pkg/geo"
)

// SearchQuery is one search request. At least one of Date, LocationQuery,
// MapClick or CategoryID must be set.
type SearchQuery struct {
	Date          *time.Time
	LocationQuery string
	MapClick      *geo.Coordinates
	CategoryID    string
}

// SearchService composes geocoding, locality partitioning, radius matching
// and availability filtering into one ranked search pipeline
type SearchService struct {
	supplierRepo repositories.SupplierRepository
	geocoder     providers.GeocodingProvider
	locator      *SupplierLocator
	radiusMatch  *RadiusMatcher
	availability *AvailabilityFilter
	eventBus     providers.EventBus
	metrics      *observability.Metrics
}

// NewSearchService creates a new search service. eventBus and metrics are
// optional; nil disables analytics publishing and metric recording.
func NewSearchService(
	supplierRepo repositories.SupplierRepository,
	geocoder providers.GeocodingProvider,
	locator *SupplierLocator,
	radiusMatch *RadiusMatcher,
	availability *AvailabilityFilter,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
) *SearchService {
	return &SearchService{
		supplierRepo: supplierRepo,
		geocoder:     geocoder,
		locator:      locator,
		radiusMatch:  radiusMatch,
		availability: availability,
		eventBus:     eventBus,
		metrics:      metrics,
	}
}

// Search runs the full pipeline: resolve location, partition the catalog,
// radius-match travel candidates, filter by availability and rank local
// suppliers before mobile ones. A failed geocode degrades the search to
// un-located mode instead of failing the request.
func (s *SearchService) Search(ctx context.Context, query SearchQuery) (*entities.SearchResult, error) {
	ctx, span := observability.StartSpan(ctx, "SearchService.Search")
	defer span.End()
	started := time.Now()

	hasLocation := query.LocationQuery != "" || query.MapClick != nil
	if query.Date == nil && !hasLocation && query.CategoryID == "" {
		return nil, apperrors.NewValidationError("search requires a date, a location or a category")
	}

	location := s.resolveLocation(ctx, query)

	active := true
	suppliers, err := s.supplierRepo.List(ctx, repositories.SupplierFilter{
		CategoryID: query.CategoryID,
		IsActive:   &active,
	})
	if err != nil {
		return nil, err
	}

	var result *entities.SearchResult
	if location == nil {
		result, err = s.searchUnlocated(ctx, suppliers, query)
	} else {
		result, err = s.searchLocated(ctx, suppliers, location, query)
	}
	if err != nil {
		return nil, err
	}

	mode := "unlocated"
	if location != nil {
		mode = "located"
	}
	observability.RecordSearchMetric(ctx, s.metrics, mode, len(result.Suppliers))
	s.publishEvent(query, location != nil, result, time.Since(started))

	return result, nil
}

// resolveLocation maps a location query or map click to coordinates. Any
// resolver failure is logged and treated as no location: the search then
// runs un-located rather than erroring.
func (s *SearchService) resolveLocation(ctx context.Context, query SearchQuery) *entities.ResolvedLocation {
	var (
		location *entities.ResolvedLocation
		err      error
	)

	switch {
	case query.LocationQuery != "":
		observability.RecordGeocodeLookup(ctx, s.metrics, "forward")
		location, err = s.geocoder.Resolve(ctx, query.LocationQuery)
	case query.MapClick != nil:
		observability.RecordGeocodeLookup(ctx, s.metrics, "reverse")
		location, err = s.geocoder.ReverseResolve(ctx, query.MapClick.Latitude, query.MapClick.Longitude)
	default:
		return nil
	}

	if err != nil {
		log.Warn().
			Err(err).
			Str("location_query", query.LocationQuery).
			Msg("location resolution failed, searching without location filter")
		return nil
	}
	return location
}

func (s *SearchService) searchUnlocated(ctx context.Context, suppliers []*entities.Supplier, query SearchQuery) (*entities.SearchResult, error) {
	available, err := s.availability.FilterAvailable(ctx, suppliers, query.Date)
	if err != nil {
		return nil, err
	}

	ranked := make([]entities.RankedSupplier, 0, len(available))
	for _, supplier := range available {
		ranked = append(ranked, entities.RankedSupplier{Supplier: supplier})
	}
	return &entities.SearchResult{Suppliers: ranked}, nil
}

func (s *SearchService) searchLocated(ctx context.Context, suppliers []*entities.Supplier, location *entities.ResolvedLocation, query SearchQuery) (*entities.SearchResult, error) {
	// The category filter was already applied when listing the catalog.
	partition := s.locator.Locate(suppliers, location, "")

	origin := geo.Coordinates{Latitude: location.Latitude, Longitude: location.Longitude}
	radius := s.radiusMatch.WithinRadius(partition.MobileCandidates, origin)

	// Union with local taking precedence over a mobile match for the same
	// supplier.
	seen := make(map[string]struct{}, len(partition.Local))
	ranked := make([]entities.RankedSupplier, 0, len(partition.Local)+len(radius.Matches))
	for _, supplier := range partition.Local {
		if _, ok := seen[supplier.ID]; ok {
			continue
		}
		seen[supplier.ID] = struct{}{}
		ranked = append(ranked, entities.RankedSupplier{Supplier: supplier, IsLocal: true})
	}
	for _, match := range radius.Matches {
		if _, ok := seen[match.Supplier.ID]; ok {
			continue
		}
		seen[match.Supplier.ID] = struct{}{}
		distance := match.DistanceKm
		ranked = append(ranked, entities.RankedSupplier{
			Supplier:   match.Supplier,
			IsMobile:   true,
			DistanceKm: &distance,
		})
	}

	filtered, err := s.filterRankedByAvailability(ctx, ranked, query.Date)
	if err != nil {
		return nil, err
	}

	return &entities.SearchResult{
		Suppliers:   filtered,
		Location:    location,
		Unmatchable: radius.Unmatchable,
	}, nil
}

func (s *SearchService) filterRankedByAvailability(ctx context.Context, ranked []entities.RankedSupplier, date *time.Time) ([]entities.RankedSupplier, error) {
	if date == nil {
		return ranked, nil
	}

	suppliers := make([]*entities.Supplier, 0, len(ranked))
	for _, r := range ranked {
		suppliers = append(suppliers, r.Supplier)
	}
	available, err := s.availability.FilterAvailable(ctx, suppliers, date)
	if err != nil {
		return nil, err
	}

	availableIDs := make(map[string]struct{}, len(available))
	for _, supplier := range available {
		availableIDs[supplier.ID] = struct{}{}
	}

	filtered := ranked[:0:0]
	for _, r := range ranked {
		if _, ok := availableIDs[r.Supplier.ID]; ok {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// publishEvent emits one analytics event per search, in the background so
// the request never waits on the bus
func (s *SearchService) publishEvent(query SearchQuery, locationResolved bool, result *entities.SearchResult, latency time.Duration) {
	if s.eventBus == nil {
		return
	}

	event := &entities.SearchEvent{
		ID:               uuid.New().String(),
		LocationQuery:    query.LocationQuery,
		CategoryID:       query.CategoryID,
		LocationResolved: locationResolved,
		ResultCount:      len(result.Suppliers),
		UnmatchableCount: result.Unmatchable,
		LatencyMs:        int(latency.Milliseconds()),
		CreatedAt:        time.Now().UTC(),
	}
	if query.Date != nil {
		event.Date = query.Date.Format("2006-01-02")
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.eventBus.Publish(ctx, providers.EventChannelSearches, event); err != nil {
			log.Warn().Err(err).Msg("failed to publish search event")
		}
	}()
}
