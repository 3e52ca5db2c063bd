package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/petrecem/petrecem-backend/internal/application/services"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	apperrors "github.com/petrecem/petrecem-backend/pkg/errors"
)

type stubSearcher struct {
	gotQuery services.SearchQuery
	result   *entities.SearchResult
	err      error
}

func (s *stubSearcher) Search(ctx context.Context, query services.SearchQuery) (*entities.SearchResult, error) {
	s.gotQuery = query
	return s.result, s.err
}

func TestSearchHandler_ParsesQueryParameters(t *testing.T) {
	stub := &stubSearcher{result: &entities.SearchResult{}}
	handler := NewSearchHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/search?date=2026-06-20&location=Sibiu&category=cat-dj", nil)
	rec := httptest.NewRecorder()

	handler.Search(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.gotQuery.Date)
	assert.Equal(t, "2026-06-20", stub.gotQuery.Date.Format("2006-01-02"))
	assert.Equal(t, "Sibiu", stub.gotQuery.LocationQuery)
	assert.Equal(t, "cat-dj", stub.gotQuery.CategoryID)
	assert.Nil(t, stub.gotQuery.MapClick)
}

func TestSearchHandler_ParsesMapClick(t *testing.T) {
	stub := &stubSearcher{result: &entities.SearchResult{}}
	handler := NewSearchHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/search?lat=45.79&lon=24.12", nil)
	rec := httptest.NewRecorder()

	handler.Search(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.gotQuery.MapClick)
	assert.InDelta(t, 45.79, stub.gotQuery.MapClick.Latitude, 0.001)
	assert.InDelta(t, 24.12, stub.gotQuery.MapClick.Longitude, 0.001)
}

func TestSearchHandler_BadDateIsRejected(t *testing.T) {
	handler := NewSearchHandler(&stubSearcher{})

	req := httptest.NewRequest(http.MethodGet, "/api/search?date=20-06-2026", nil)
	rec := httptest.NewRecorder()

	handler.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchHandler_HalfMapClickIsRejected(t *testing.T) {
	handler := NewSearchHandler(&stubSearcher{})

	req := httptest.NewRequest(http.MethodGet, "/api/search?lat=45.79", nil)
	rec := httptest.NewRecorder()

	handler.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchHandler_ValidationErrorMapsTo400(t *testing.T) {
	stub := &stubSearcher{err: apperrors.NewValidationError("search requires a date, a location or a category")}
	handler := NewSearchHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()

	handler.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "requires")
}

func TestSearchHandler_ResponseShape(t *testing.T) {
	distance := 131.2
	stub := &stubSearcher{result: &entities.SearchResult{
		Suppliers: []entities.RankedSupplier{
			{Supplier: &entities.Supplier{ID: "sup-1"}, IsLocal: true},
			{Supplier: &entities.Supplier{ID: "sup-2"}, IsMobile: true, DistanceKm: &distance},
		},
		Location:    &entities.ResolvedLocation{CityName: "Sibiu"},
		Unmatchable: 1,
	}}
	handler := NewSearchHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/search?location=Sibiu", nil)
	rec := httptest.NewRecorder()

	handler.Search(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Suppliers   []entities.RankedSupplier `json:"suppliers"`
		Count       int                       `json:"count"`
		Unmatchable int                       `json:"unmatchable"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, 1, body.Unmatchable)
	require.Len(t, body.Suppliers, 2)
	assert.True(t, body.Suppliers[0].IsLocal)
	require.NotNil(t, body.Suppliers[1].DistanceKm)
	assert.InDelta(t, 131.2, *body.Suppliers[1].DistanceKm, 0.01)
}
