package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/petrecem/petrecem-backend/internal/application/services"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/pkg/geo"
)

// supplierSearcher is the slice of SearchService the handler needs
type supplierSearcher interface {
	Search(ctx context.Context, query services.SearchQuery) (*entities.SearchResult, error)
}

// SearchHandler handles supplier availability search requests
type SearchHandler struct {
	searcher supplierSearcher
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searcher supplierSearcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

// Search handles GET /api/search. Query parameters: date (YYYY-MM-DD),
// location (free text), lat+lon (map click), category. At least one must
// be present.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query := services.SearchQuery{
		LocationQuery: params.Get("location"),
		CategoryID:    params.Get("category"),
	}

	if raw := params.Get("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
			return
		}
		query.Date = &date
	}

	if params.Get("lat") != "" || params.Get("lon") != "" {
		lat, latErr := strconv.ParseFloat(params.Get("lat"), 64)
		lon, lonErr := strconv.ParseFloat(params.Get("lon"), 64)
		if latErr != nil || lonErr != nil {
			respondWithError(w, http.StatusBadRequest, "lat and lon must both be valid coordinates")
			return
		}
		query.MapClick = &geo.Coordinates{Latitude: lat, Longitude: lon}
	}

	result, err := h.searcher.Search(r.Context(), query)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suppliers":   result.Suppliers,
		"count":       len(result.Suppliers),
		"location":    result.Location,
		"unmatchable": result.Unmatchable,
	})
}
