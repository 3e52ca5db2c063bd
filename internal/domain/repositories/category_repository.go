package repositories

import (
	"context"

	"github.com/petrecem/petrecem-backend/internal/domain/entities"
)

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	// List retrieves all categories
	List(ctx context.Context) ([]*entities.Category, error)

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id string) (*entities.Category, error)

	// Create creates a new category
	Create(ctx context.Context, category *entities.Category) error
}
