package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/petrecem/petrecem-backend/internal/application/services"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/internal/domain/repositories"
)

// SupplierHandler handles supplier profile and calendar HTTP requests
type SupplierHandler struct {
	service *services.SupplierService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(service *services.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

// ListSuppliers handles GET /api/suppliers
func (h *SupplierHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	active := true
	filter := repositories.SupplierFilter{
		CategoryID: params.Get("category"),
		County:     params.Get("county"),
		IsActive:   &active,
		Limit:      30,
	}
	if raw := params.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}
	if raw := params.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	suppliers, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suppliers": suppliers,
		"count":     len(suppliers),
	})
}

// SearchSuppliers handles GET /api/suppliers/search (keyword search)
func (h *SupplierHandler) SearchSuppliers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	suppliers, err := h.service.SearchByKeyword(r.Context(), query, 30)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suppliers": suppliers,
		"count":     len(suppliers),
	})
}

// GetSupplier handles GET /api/suppliers/{id}
func (h *SupplierHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "supplier ID is required")
		return
	}

	supplier, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, supplier)
}

// CreateSupplier handles POST /api/suppliers
func (h *SupplierHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var supplier entities.Supplier
	if err := json.NewDecoder(r.Body).Decode(&supplier); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if supplier.BusinessName == "" {
		respondWithError(w, http.StatusBadRequest, "business_name is required")
		return
	}

	if err := h.service.Create(r.Context(), &supplier); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, supplier)
}

// UpdateSupplier handles PATCH /api/suppliers/{id}
func (h *SupplierHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "supplier ID is required")
		return
	}

	var supplier entities.Supplier
	if err := json.NewDecoder(r.Body).Decode(&supplier); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	supplier.ID = id

	if err := h.service.Update(r.Context(), &supplier); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, supplier)
}

// GetUnavailableDates handles GET /api/suppliers/{id}/unavailable-dates
func (h *SupplierHandler) GetUnavailableDates(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "supplier ID is required")
		return
	}

	dates, err := h.service.ListUnavailableDates(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"unavailable_dates": dates,
		"count":             len(dates),
	})
}

type unavailableDateRequest struct {
	Date string `json:"date"`
}

// MarkUnavailable handles POST /api/suppliers/{id}/unavailable-dates
func (h *SupplierHandler) MarkUnavailable(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "supplier ID is required")
		return
	}

	var req unavailableDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return
	}

	if err := h.service.MarkUnavailable(r.Context(), id, date); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"status": "marked"})
}

// ClearUnavailable handles DELETE /api/suppliers/{id}/unavailable-dates/{date}
func (h *SupplierHandler) ClearUnavailable(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	date, err := time.Parse("2006-01-02", r.PathValue("date"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return
	}

	if err := h.service.ClearUnavailable(r.Context(), id, date); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
