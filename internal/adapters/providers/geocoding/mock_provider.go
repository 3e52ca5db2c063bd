package geocoding

import (
	"context"
	"fmt"
	"strings"

	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/internal/domain/providers"
	apperrors "github.com/petrecem/petrecem-backend/pkg/errors"
	"github.com/petrecem/petrecem-backend/pkg/geo"
)

// MockGeocodingProvider implements a mock geocoding provider for
// development and tests. It knows a handful of Romanian cities and
// returns NotFound for everything else, mirroring the real provider's
// degraded-result semantics.
type MockGeocodingProvider struct{}

// NewMockGeocodingProvider creates a new mock geocoding provider
func NewMockGeocodingProvider() providers.GeocodingProvider {
	return &MockGeocodingProvider{}
}

var mockCities = []entities.ResolvedLocation{
	{Latitude: 46.7712, Longitude: 23.6236, DisplayName: "Cluj-Napoca, Cluj, România", CityName: "Cluj-Napoca"},
	{Latitude: 45.7983, Longitude: 24.1256, DisplayName: "Sibiu, Sibiu, România", CityName: "Sibiu"},
	{Latitude: 47.0465, Longitude: 21.9189, DisplayName: "Oradea, Bihor, România", CityName: "Oradea"},
	{Latitude: 44.4268, Longitude: 26.1025, DisplayName: "București, România", CityName: "București"},
	{Latitude: 45.7489, Longitude: 21.2087, DisplayName: "Timișoara, Timiș, România", CityName: "Timișoara"},
	{Latitude: 45.6579, Longitude: 25.6012, DisplayName: "Brașov, Brașov, România", CityName: "Brașov"},
}

// Resolve converts a free-text place query to a location
func (m *MockGeocodingProvider) Resolve(ctx context.Context, query string) (*entities.ResolvedLocation, error) {
	normalized := geo.NormalizeName(query)
	for _, city := range mockCities {
		if strings.Contains(normalized, geo.NormalizeName(city.CityName)) {
			loc := city
			return &loc, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("no results for location %q", query))
}

// ReverseResolve converts coordinates to the nearest known mock city
func (m *MockGeocodingProvider) ReverseResolve(ctx context.Context, lat, lon float64) (*entities.ResolvedLocation, error) {
	point := geo.Coordinates{Latitude: lat, Longitude: lon}
	if !geo.RomaniaBounds.Contains(point) {
		return nil, apperrors.NewNotFoundError("coordinates are outside the supported country")
	}

	var nearest *entities.ResolvedLocation
	best := -1.0
	for i := range mockCities {
		d := geo.DistanceKm(point, geo.Coordinates{Latitude: mockCities[i].Latitude, Longitude: mockCities[i].Longitude})
		if best < 0 || d < best {
			best = d
			nearest = &mockCities[i]
		}
	}

	loc := *nearest
	return &loc, nil
}
