package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrecem/petrecem-backend/internal/adapters/providers/geocoding"
	"github.com/petrecem/petrecem-backend/internal/api/handlers"
	"github.com/petrecem/petrecem-backend/internal/api/routes"
	"github.com/petrecem/petrecem-backend/internal/application/services"
)

func newTestRouter() http.Handler {
	geocoder := geocoding.NewMockGeocodingProvider()
	searchService := services.NewSearchService(
		nil,
		geocoder,
		services.NewSupplierLocator(services.DefaultMobilityPolicy()),
		services.NewRadiusMatcher(),
		services.NewAvailabilityFilter(nil),
		nil,
		nil,
	)

	router := routes.NewRouter(
		handlers.NewSearchHandler(searchService),
		handlers.NewSupplierHandler(services.NewSupplierService(nil, nil, nil)),
		handlers.NewCategoryHandler(nil),
		handlers.NewGeocodingHandler(geocoder),
		handlers.NewAnalyticsHandler(services.NewAnalyticsService(nil, nil)),
		nil,
		nil,
	)
	return router.SetupRoutes()
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouter_GeocodeRoutes(t *testing.T) {
	handler := newTestRouter()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/geocode?q=Sibiu", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var forward struct {
		CityName string `json:"city_name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &forward))
	assert.Equal(t, "Sibiu", forward.CityName)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/geocode/reverse?lat=45.7983&lon=24.1256", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var reverse struct {
		CityName string `json:"city_name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reverse))
	assert.Equal(t, "Sibiu", reverse.CityName)
}
