package handlers

import (
	"net/http"
	"strconv"

	"github.com/petrecem/petrecem-backend/internal/domain/providers"
)

// GeocodingHandler exposes the geocoding provider for map interactions
type GeocodingHandler struct {
	geocoder providers.GeocodingProvider
}

// NewGeocodingHandler creates a new geocoding handler
func NewGeocodingHandler(geocoder providers.GeocodingProvider) *GeocodingHandler {
	return &GeocodingHandler{geocoder: geocoder}
}

// Geocode handles GET /api/geocode?q=<place>
func (h *GeocodingHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	location, err := h.geocoder.Resolve(r.Context(), query)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, location)
}

// ReverseGeocode handles GET /api/geocode/reverse?lat=<lat>&lon=<lon>
func (h *GeocodingHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		respondWithError(w, http.StatusBadRequest, "lat and lon must both be valid coordinates")
		return
	}

	location, err := h.geocoder.ReverseResolve(r.Context(), lat, lon)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, location)
}
