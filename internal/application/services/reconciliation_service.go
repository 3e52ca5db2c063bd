package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/internal/domain/providers"
	"github.com/petrecem/petrecem-backend/internal/domain/repositories"
	apperrors "github.com/petrecem/petrecem-backend/pkg/errors"
	"github.com/petrecem/petrecem-backend/pkg/retry"
)

// ReconciliationReport summarizes one geocode reconciliation run
type ReconciliationReport struct {
	Total         int       `json:"total"`
	Resolved      int       `json:"resolved"`
	Unresolved    int       `json:"unresolved"`
	UnresolvedIDs []string  `json:"unresolved_ids,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}

// ReconciliationService verifies that every active supplier's stored
// location still resolves with the geocoding service. Suppliers whose
// locality cannot be resolved end up unmatchable in radius search, so the
// report flags them for manual cleanup.
//
// The run is strictly sequential: the upstream service allows roughly one
// request per second and the geocoding provider throttles each call, so
// fanning out would only trade throughput for rejected requests.
type ReconciliationService struct {
	supplierRepo repositories.SupplierRepository
	geocoder     providers.GeocodingProvider
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(supplierRepo repositories.SupplierRepository, geocoder providers.GeocodingProvider) *ReconciliationService {
	return &ReconciliationService{
		supplierRepo: supplierRepo,
		geocoder:     geocoder,
	}
}

// Reconcile resolves every active supplier's location, trying alternate
// query phrasings before declaring a supplier unresolved. Transient
// upstream failures are retried with backoff; a definitive NotFound moves
// on to the next phrasing immediately.
func (s *ReconciliationService) Reconcile(ctx context.Context) (*ReconciliationReport, error) {
	report := &ReconciliationReport{StartedAt: time.Now().UTC()}

	active := true
	suppliers, err := s.supplierRepo.List(ctx, repositories.SupplierFilter{IsActive: &active})
	if err != nil {
		return nil, err
	}
	report.Total = len(suppliers)

	for _, supplier := range suppliers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if s.resolveSupplier(ctx, supplier) {
			report.Resolved++
			continue
		}

		report.Unresolved++
		report.UnresolvedIDs = append(report.UnresolvedIDs, supplier.ID)
		log.Warn().
			Str("supplier_id", supplier.ID).
			Str("locality", supplier.Locality).
			Str("county", supplier.County).
			Msg("supplier location could not be resolved")
	}

	report.FinishedAt = time.Now().UTC()
	log.Info().
		Int("total", report.Total).
		Int("resolved", report.Resolved).
		Int("unresolved", report.Unresolved).
		Msg("geocode reconciliation finished")
	return report, nil
}

func (s *ReconciliationService) resolveSupplier(ctx context.Context, supplier *entities.Supplier) bool {
	for _, query := range s.queryPhrasings(supplier) {
		_, err := s.resolveWithRetry(ctx, query)
		if err == nil {
			return true
		}
		if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			// Retries are exhausted; treat the phrasing as unresolved and
			// let the next one try.
			log.Debug().Err(err).Str("query", query).Msg("geocode phrasing failed")
		}
	}
	return false
}

// resolveWithRetry retries only transient upstream failures. NotFound is a
// definitive answer and returns immediately.
func (s *ReconciliationService) resolveWithRetry(ctx context.Context, query string) (*entities.ResolvedLocation, error) {
	var location *entities.ResolvedLocation

	err := retry.DoWithLog(ctx, retry.GeocodingConfig(), "geocoding", func() error {
		resolved, err := s.geocoder.Resolve(ctx, query)
		if err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
				location = nil
				return nil
			}
			return err
		}
		location = resolved
		return nil
	}, func(attempt int, err error, nextDelay time.Duration) {
		log.Debug().
			Err(err).
			Int("attempt", attempt).
			Dur("next_delay", nextDelay).
			Str("query", query).
			Msg("retrying geocode lookup")
	})
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no location for query %q", query))
	}
	return location, nil
}

// queryPhrasings orders candidate queries from most to least specific
func (s *ReconciliationService) queryPhrasings(supplier *entities.Supplier) []string {
	var phrasings []string
	if supplier.Locality != "" && supplier.County != "" {
		phrasings = append(phrasings, fmt.Sprintf("%s, %s, Romania", supplier.Locality, supplier.County))
	}
	if supplier.Locality != "" {
		phrasings = append(phrasings, fmt.Sprintf("%s, Romania", supplier.Locality))
	}
	if supplier.County != "" {
		phrasings = append(phrasings, fmt.Sprintf("%s, Romania", supplier.County))
	}
	return phrasings
}
