package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/petrecem/petrecem-backend/internal/application/services"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/pkg/geo"
)

func clujOrigin(t *testing.T) geo.Coordinates {
	t.Helper()
	origin, ok := geo.CountyCentroid("Cluj")
	require.True(t, ok)
	return origin
}

func TestRadiusMatcher_UsesSupplierTravelRadius(t *testing.T) {
	matcher := services.NewRadiusMatcher()
	origin := clujOrigin(t)

	// Cluj and Bihor centroids are about 131 km apart.
	farEnough := &entities.Supplier{ID: "sup-1", County: "Bihor", TravelRadiusKm: 150, AvailableForTravel: true}
	tooShort := &entities.Supplier{ID: "sup-2", County: "Bihor", TravelRadiusKm: 50, AvailableForTravel: true}

	result := matcher.WithinRadius([]*entities.Supplier{farEnough, tooShort}, origin)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, "sup-1", result.Matches[0].Supplier.ID)
	assert.InDelta(t, 131, result.Matches[0].DistanceKm, 5)
	assert.Zero(t, result.Unmatchable)
}

func TestRadiusMatcher_SortsByDistanceWithIDTieBreak(t *testing.T) {
	matcher := services.NewRadiusMatcher()
	origin := clujOrigin(t)

	near := &entities.Supplier{ID: "sup-c", County: "Salaj", TravelRadiusKm: 500}
	farB := &entities.Supplier{ID: "sup-b", County: "Bihor", TravelRadiusKm: 500}
	farA := &entities.Supplier{ID: "sup-a", County: "Bihor", TravelRadiusKm: 500}

	result := matcher.WithinRadius([]*entities.Supplier{farB, near, farA}, origin)

	require.Len(t, result.Matches, 3)
	assert.Equal(t, "sup-c", result.Matches[0].Supplier.ID)
	assert.Equal(t, "sup-a", result.Matches[1].Supplier.ID)
	assert.Equal(t, "sup-b", result.Matches[2].Supplier.ID)
}

func TestRadiusMatcher_AllMatchesWithinOwnRadius(t *testing.T) {
	matcher := services.NewRadiusMatcher()
	origin := clujOrigin(t)

	candidates := []*entities.Supplier{
		{ID: "sup-1", County: "Bihor", TravelRadiusKm: 140},
		{ID: "sup-2", County: "Timiș", TravelRadiusKm: 100},
		{ID: "sup-3", County: "Sălaj", TravelRadiusKm: 80},
	}

	result := matcher.WithinRadius(candidates, origin)

	for _, match := range result.Matches {
		assert.LessOrEqual(t, match.DistanceKm, float64(match.Supplier.TravelRadiusKm))
	}
}

func TestRadiusMatcher_UnknownCountyIsCountedNotErrored(t *testing.T) {
	matcher := services.NewRadiusMatcher()
	origin := clujOrigin(t)

	unmatched := &entities.Supplier{ID: "sup-1", County: "Atlantida", Address: "Strada Principală 1"}
	matched := &entities.Supplier{ID: "sup-2", County: "Bihor", TravelRadiusKm: 200}

	result := matcher.WithinRadius([]*entities.Supplier{unmatched, matched}, origin)

	assert.Equal(t, 1, result.Unmatchable)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "sup-2", result.Matches[0].Supplier.ID)
}

func TestRadiusMatcher_FallsBackToAddressCountyMatch(t *testing.T) {
	matcher := services.NewRadiusMatcher()
	origin := clujOrigin(t)

	// No structured county, but the free-text address names one.
	supplier := &entities.Supplier{ID: "sup-1", Address: "Strada Republicii 10, Oradea, Bihor", TravelRadiusKm: 200}

	result := matcher.WithinRadius([]*entities.Supplier{supplier}, origin)

	require.Len(t, result.Matches, 1)
	assert.InDelta(t, 131, result.Matches[0].DistanceKm, 5)
}
