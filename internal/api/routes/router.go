package routes

import (
	"net/http"

	"github.com/petrecem/petrecem-backend/internal/api/handlers"
	"github.com/petrecem/petrecem-backend/internal/api/middleware"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchHandler    *handlers.SearchHandler
	supplierHandler  *handlers.SupplierHandler
	categoryHandler  *handlers.CategoryHandler
	geocodingHandler *handlers.GeocodingHandler
	analyticsHandler *handlers.AnalyticsHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router. cacheMiddleware and metrics may be nil.
func NewRouter(
	searchHandler *handlers.SearchHandler,
	supplierHandler *handlers.SupplierHandler,
	categoryHandler *handlers.CategoryHandler,
	geocodingHandler *handlers.GeocodingHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		searchHandler:    searchHandler,
		supplierHandler:  supplierHandler,
		categoryHandler:  categoryHandler,
		geocodingHandler: geocodingHandler,
		analyticsHandler: analyticsHandler,
		cacheMiddleware:  cacheMiddleware,
		metrics:          metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Availability search
	r.mux.HandleFunc("GET /api/search", r.searchHandler.Search)

	// Supplier endpoints
	r.mux.HandleFunc("GET /api/suppliers", r.supplierHandler.ListSuppliers)
	r.mux.HandleFunc("GET /api/suppliers/search", r.supplierHandler.SearchSuppliers)
	r.mux.HandleFunc("GET /api/suppliers/{id}", r.supplierHandler.GetSupplier)
	r.mux.HandleFunc("POST /api/suppliers", r.supplierHandler.CreateSupplier)
	r.mux.HandleFunc("PATCH /api/suppliers/{id}", r.supplierHandler.UpdateSupplier)
	r.mux.HandleFunc("GET /api/suppliers/{id}/unavailable-dates", r.supplierHandler.GetUnavailableDates)
	r.mux.HandleFunc("POST /api/suppliers/{id}/unavailable-dates", r.supplierHandler.MarkUnavailable)
	r.mux.HandleFunc("DELETE /api/suppliers/{id}/unavailable-dates/{date}", r.supplierHandler.ClearUnavailable)

	// Category endpoints
	r.mux.HandleFunc("GET /api/categories", r.categoryHandler.ListCategories)
	r.mux.HandleFunc("GET /api/categories/{id}", r.categoryHandler.GetCategory)

	// Geocoding endpoints
	r.mux.HandleFunc("GET /api/geocode", r.geocodingHandler.Geocode)
	r.mux.HandleFunc("GET /api/geocode/reverse", r.geocodingHandler.ReverseGeocode)

	// Analytics endpoints
	r.mux.HandleFunc("GET /api/analytics/zero-results", r.analyticsHandler.GetZeroResultSearches)

	var handler http.Handler = r.mux
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
