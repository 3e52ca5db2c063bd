package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/internal/domain/repositories"
)

// SupplierService handles supplier profile and calendar operations
type SupplierService struct {
	repo         repositories.SupplierRepository
	searchRepo   repositories.SupplierSearchRepository
	availability repositories.AvailabilityRepository
}

// NewSupplierService creates a new supplier service. searchRepo may be nil
// when no search index is configured; keyword search then falls back to
// the database.
func NewSupplierService(
	repo repositories.SupplierRepository,
	searchRepo repositories.SupplierSearchRepository,
	availability repositories.AvailabilityRepository,
) *SupplierService {
	return &SupplierService{
		repo:         repo,
		searchRepo:   searchRepo,
		availability: availability,
	}
}

// Create creates a new supplier and indexes it
func (s *SupplierService) Create(ctx context.Context, supplier *entities.Supplier) error {
	if supplier.ID == "" {
		supplier.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	supplier.CreatedAt = now
	supplier.UpdatedAt = now

	if err := s.repo.Create(ctx, supplier); err != nil {
		return err
	}

	if s.searchRepo != nil {
		// Indexing is eventually consistent; a failure must not fail the write.
		if err := s.searchRepo.Index(ctx, supplier); err != nil {
			log.Warn().Err(err).Str("supplier_id", supplier.ID).Msg("failed to index supplier")
		}
	}
	return nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id string) (*entities.Supplier, error) {
	return s.repo.GetByID(ctx, id)
}

// Update updates a supplier and refreshes its index entry
func (s *SupplierService) Update(ctx context.Context, supplier *entities.Supplier) error {
	supplier.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, supplier); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, supplier); err != nil {
			log.Warn().Err(err).Str("supplier_id", supplier.ID).Msg("failed to update supplier index")
		}
	}
	return nil
}

// List retrieves suppliers matching the filter
func (s *SupplierService) List(ctx context.Context, filter repositories.SupplierFilter) ([]*entities.Supplier, error) {
	return s.repo.List(ctx, filter)
}

// SearchByKeyword searches suppliers by free text, preferring the search
// index and falling back to a database name match
func (s *SupplierService) SearchByKeyword(ctx context.Context, query string, limit int) ([]*entities.Supplier, error) {
	if s.searchRepo != nil {
		suppliers, err := s.searchRepo.Search(ctx, query, limit)
		if err == nil {
			return suppliers, nil
		}
		log.Warn().Err(err).Str("query", query).Msg("search index unavailable, falling back to database")
	}
	return s.repo.SearchByName(ctx, query, limit)
}

// ListUnavailableDates returns a supplier's unavailable dates
func (s *SupplierService) ListUnavailableDates(ctx context.Context, supplierID string) ([]*entities.UnavailableDate, error) {
	return s.availability.ListForSupplier(ctx, supplierID)
}

// MarkUnavailable marks a day as unavailable for a supplier
func (s *SupplierService) MarkUnavailable(ctx context.Context, supplierID string, date time.Time) error {
	record := &entities.UnavailableDate{
		SupplierID: supplierID,
		Date:       date,
	}
	return s.availability.Create(ctx, record)
}

// ClearUnavailable removes an unavailable-date record
func (s *SupplierService) ClearUnavailable(ctx context.Context, supplierID string, date time.Time) error {
	return s.availability.Delete(ctx, supplierID, date)
}
