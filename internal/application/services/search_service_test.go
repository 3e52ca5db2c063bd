package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/petrecem/petrecem-backend/internal/application/services"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/internal/domain/repositories"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/observability"
	apperrors "github.com/petrecem/petrecem-backend/pkg/errors"
	"github.com/petrecem/petrecem-backend/pkg/geo"
)

type fakeSupplierRepo struct {
	suppliers []*entities.Supplier
}

func (f *fakeSupplierRepo) Create(ctx context.Context, supplier *entities.Supplier) error { return nil }

func (f *fakeSupplierRepo) GetByID(ctx context.Context, id string) (*entities.Supplier, error) {
	for _, s := range f.suppliers {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.NewNotFoundError("supplier not found")
}

func (f *fakeSupplierRepo) GetByIDs(ctx context.Context, ids []string) ([]*entities.Supplier, error) {
	return nil, nil
}

func (f *fakeSupplierRepo) Update(ctx context.Context, supplier *entities.Supplier) error { return nil }

func (f *fakeSupplierRepo) List(ctx context.Context, filter repositories.SupplierFilter) ([]*entities.Supplier, error) {
	out := []*entities.Supplier{}
	for _, s := range f.suppliers {
		if filter.CategoryID != "" && !s.HasCategory(filter.CategoryID) {
			continue
		}
		if filter.IsActive != nil && s.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSupplierRepo) SearchByName(ctx context.Context, query string, limit int) ([]*entities.Supplier, error) {
	return nil, nil
}

type fakeGeocoder struct {
	location *entities.ResolvedLocation
	err      error
}

func (f *fakeGeocoder) Resolve(ctx context.Context, query string) (*entities.ResolvedLocation, error) {
	return f.location, f.err
}

func (f *fakeGeocoder) ReverseResolve(ctx context.Context, lat, lon float64) (*entities.ResolvedLocation, error) {
	return f.location, f.err
}

func newSearchService(repo *fakeSupplierRepo, geocoder *fakeGeocoder, availability *fakeAvailabilityRepo) *services.SearchService {
	return services.NewSearchService(
		repo,
		geocoder,
		services.NewSupplierLocator(services.DefaultMobilityPolicy()),
		services.NewRadiusMatcher(),
		services.NewAvailabilityFilter(availability),
		nil,
		nil,
	)
}

func eventCatalog() *fakeSupplierRepo {
	return &fakeSupplierRepo{suppliers: []*entities.Supplier{
		{
			ID:           "sup-local",
			BusinessName: "Foto Sibiu",
			Address:      "Strada X, Sibiu, Sibiu",
			County:       "Sibiu",
			IsActive:     true,
			Categories:   []entities.Category{{ID: "cat-photo", Name: "Fotografi"}},
		},
		{
			ID:                 "sup-mobile",
			BusinessName:       "DJ Bihor",
			Address:            "Oradea, Bihor",
			County:             "Bihor",
			IsActive:           true,
			AvailableForTravel: true,
			TravelRadiusKm:     400,
			Categories:         []entities.Category{{ID: "cat-dj", Name: "DJ"}},
		},
		{
			ID:                 "sup-far",
			BusinessName:       "DJ Constanța",
			Address:            "Constanța",
			County:             "Constanța",
			IsActive:           true,
			AvailableForTravel: true,
			TravelRadiusKm:     50,
			Categories:         []entities.Category{{ID: "cat-dj", Name: "DJ"}},
		},
	}}
}

func sibiuLocation() *entities.ResolvedLocation {
	return &entities.ResolvedLocation{
		Latitude:    45.7983,
		Longitude:   24.1256,
		DisplayName: "Sibiu, Sibiu, România",
		CityName:    "Sibiu",
	}
}

func TestSearchService_EmptyQueryIsRejected(t *testing.T) {
	service := newSearchService(eventCatalog(), &fakeGeocoder{}, &fakeAvailabilityRepo{})

	_, err := service.Search(context.Background(), services.SearchQuery{})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestSearchService_LocalRanksBeforeMobile(t *testing.T) {
	service := newSearchService(eventCatalog(), &fakeGeocoder{location: sibiuLocation()}, &fakeAvailabilityRepo{})

	result, err := service.Search(context.Background(), services.SearchQuery{LocationQuery: "Sibiu"})

	require.NoError(t, err)
	require.Len(t, result.Suppliers, 2)

	first := result.Suppliers[0]
	assert.Equal(t, "sup-local", first.Supplier.ID)
	assert.True(t, first.IsLocal)
	assert.Nil(t, first.DistanceKm)

	second := result.Suppliers[1]
	assert.Equal(t, "sup-mobile", second.Supplier.ID)
	assert.True(t, second.IsMobile)
	require.NotNil(t, second.DistanceKm)
	assert.Greater(t, *second.DistanceKm, 0.0)
}

func TestSearchService_GeocodeFailureDegradesToUnlocated(t *testing.T) {
	geocoder := &fakeGeocoder{err: apperrors.NewNotFoundError("no results")}
	service := newSearchService(eventCatalog(), geocoder, &fakeAvailabilityRepo{})

	result, err := service.Search(context.Background(), services.SearchQuery{LocationQuery: "Nowhere"})

	require.NoError(t, err)
	assert.Nil(t, result.Location)
	// Un-located mode returns the whole active catalog, unranked.
	assert.Len(t, result.Suppliers, 3)
	for _, r := range result.Suppliers {
		assert.False(t, r.IsLocal)
		assert.False(t, r.IsMobile)
	}
}

func TestSearchService_DateOnlyFiltersFullCatalog(t *testing.T) {
	date := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	availability := &fakeAvailabilityRepo{
		unavailable: map[string][]string{"2026-06-20": {"sup-mobile"}},
	}
	service := newSearchService(eventCatalog(), &fakeGeocoder{}, availability)

	result, err := service.Search(context.Background(), services.SearchQuery{Date: &date})

	require.NoError(t, err)
	ids := []string{}
	for _, r := range result.Suppliers {
		ids = append(ids, r.Supplier.ID)
	}
	assert.Equal(t, []string{"sup-local", "sup-far"}, ids)
}

func TestSearchService_AllUnavailableYieldsEmptyResult(t *testing.T) {
	date := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	availability := &fakeAvailabilityRepo{
		unavailable: map[string][]string{"2026-06-20": {"sup-local", "sup-mobile", "sup-far"}},
	}
	service := newSearchService(eventCatalog(), &fakeGeocoder{}, availability)

	result, err := service.Search(context.Background(), services.SearchQuery{Date: &date})

	require.NoError(t, err)
	assert.Empty(t, result.Suppliers)
}

func TestSearchService_DateAndLocationCombine(t *testing.T) {
	date := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	availability := &fakeAvailabilityRepo{
		unavailable: map[string][]string{"2026-06-20": {"sup-local"}},
	}
	service := newSearchService(eventCatalog(), &fakeGeocoder{location: sibiuLocation()}, availability)

	result, err := service.Search(context.Background(), services.SearchQuery{
		Date:          &date,
		LocationQuery: "Sibiu",
	})

	require.NoError(t, err)
	require.Len(t, result.Suppliers, 1)
	assert.Equal(t, "sup-mobile", result.Suppliers[0].Supplier.ID)
	assert.True(t, result.Suppliers[0].IsMobile)
}

func TestSearchService_CategoryRestrictsResults(t *testing.T) {
	service := newSearchService(eventCatalog(), &fakeGeocoder{location: sibiuLocation()}, &fakeAvailabilityRepo{})

	result, err := service.Search(context.Background(), services.SearchQuery{
		LocationQuery: "Sibiu",
		CategoryID:    "cat-dj",
	})

	require.NoError(t, err)
	require.Len(t, result.Suppliers, 1)
	assert.Equal(t, "sup-mobile", result.Suppliers[0].Supplier.ID)
}

func TestSearchService_MapClickResolvesLocation(t *testing.T) {
	service := newSearchService(eventCatalog(), &fakeGeocoder{location: sibiuLocation()}, &fakeAvailabilityRepo{})

	result, err := service.Search(context.Background(), services.SearchQuery{
		MapClick: &geo.Coordinates{Latitude: 45.79, Longitude: 24.12},
	})

	require.NoError(t, err)
	require.NotNil(t, result.Location)
	assert.Equal(t, "Sibiu", result.Location.CityName)
}

func TestSearchService_UnmatchableCountyIsCounted(t *testing.T) {
	repo := &fakeSupplierRepo{suppliers: []*entities.Supplier{
		{
			ID:                 "sup-lost",
			Address:            "Strada Principală 1",
			County:             "Atlantida",
			IsActive:           true,
			AvailableForTravel: true,
			TravelRadiusKm:     500,
			Categories:         []entities.Category{{ID: "cat-dj", Name: "DJ"}},
		},
	}}
	service := newSearchService(repo, &fakeGeocoder{location: sibiuLocation()}, &fakeAvailabilityRepo{})

	result, err := service.Search(context.Background(), services.SearchQuery{LocationQuery: "Sibiu"})

	require.NoError(t, err)
	assert.Empty(t, result.Suppliers)
	assert.Equal(t, 1, result.Unmatchable)
}

func TestSearchService_GeocodeLookupsAreCounted(t *testing.T) {
	previous := otel.GetMeterProvider()
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	t.Cleanup(func() { otel.SetMeterProvider(previous) })

	metrics, err := observability.InitMetrics()
	require.NoError(t, err)

	service := services.NewSearchService(
		eventCatalog(),
		&fakeGeocoder{location: sibiuLocation()},
		services.NewSupplierLocator(services.DefaultMobilityPolicy()),
		services.NewRadiusMatcher(),
		services.NewAvailabilityFilter(&fakeAvailabilityRepo{}),
		nil,
		metrics,
	)

	_, err = service.Search(context.Background(), services.SearchQuery{LocationQuery: "Sibiu"})
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var lookups int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "geocode.lookup.count" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				lookups += dp.Value
			}
		}
	}
	assert.Equal(t, int64(1), lookups)
}
