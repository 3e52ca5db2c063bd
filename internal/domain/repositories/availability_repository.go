package repositories

import (
	"context"
	"time"

	"github.com/petrecem/petrecem-backend/internal/domain/entities"
)

// AvailabilityRepository defines the interface for unavailable-date records.
// Records are created and deleted by suppliers through their calendar; the
// search core only reads them.
type AvailabilityRepository interface {
	// ListUnavailableSupplierIDs returns the IDs of all suppliers with an
	// unavailable record on the given calendar day
	ListUnavailableSupplierIDs(ctx context.Context, date time.Time) ([]string, error)

	// ListForSupplier returns all unavailable dates of one supplier
	ListForSupplier(ctx context.Context, supplierID string) ([]*entities.UnavailableDate, error)

	// Create marks a day as unavailable for a supplier
	Create(ctx context.Context, record *entities.UnavailableDate) error

	// Delete removes an unavailable-date record
	Delete(ctx context.Context, supplierID string, date time.Time) error
}
