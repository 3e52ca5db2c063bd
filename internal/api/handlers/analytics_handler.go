package handlers

import (
	"net/http"
	"strconv"

	"github.com/petrecem/petrecem-backend/internal/application/services"
)

// AnalyticsHandler exposes search analytics read endpoints
type AnalyticsHandler struct {
	service *services.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetZeroResultSearches handles GET /api/analytics/zero-results
func (h *AnalyticsHandler) GetZeroResultSearches(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	events, err := h.service.GetZeroResultSearches(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"searches": events,
		"count":    len(events),
	})
}
