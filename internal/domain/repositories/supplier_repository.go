package repositories

import (
	"context"

	"github.com/petrecem/petrecem-backend/internal/domain/entities"
)

// SupplierRepository defines the interface for supplier data operations.
// The search core only reads suppliers; writes belong to the profile
// management side of the application.
type SupplierRepository interface {
	// Create creates a new supplier with its category links
	Create(ctx context.Context, supplier *entities.Supplier) error

	// GetByID retrieves a supplier by ID
	GetByID(ctx context.Context, id string) (*entities.Supplier, error)

	// GetByIDs retrieves multiple suppliers by their IDs
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Supplier, error)

	// Update updates a supplier
	Update(ctx context.Context, supplier *entities.Supplier) error

	// List retrieves suppliers with their categories attached
	List(ctx context.Context, filter SupplierFilter) ([]*entities.Supplier, error)

	// SearchByName retrieves active suppliers whose business name contains
	// the query (database fallback for the search index)
	SearchByName(ctx context.Context, query string, limit int) ([]*entities.Supplier, error)
}

// SupplierSearchRepository defines the interface for the supplier search
// index (e.g. Typesense)
type SupplierSearchRepository interface {
	// Search searches suppliers by keyword
	Search(ctx context.Context, query string, limit int) ([]*entities.Supplier, error)

	// Index indexes a supplier
	Index(ctx context.Context, supplier *entities.Supplier) error

	// Delete removes a supplier from the index
	Delete(ctx context.Context, id string) error
}

// SupplierFilter defines filters for listing suppliers
type SupplierFilter struct {
	CategoryID string
	County     string
	IsActive   *bool
	Limit      int
	Offset     int
}
