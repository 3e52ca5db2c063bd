package repositories

import (
	"context"

	"github.com/petrecem/petrecem-backend/internal/domain/entities"
)

type SearchAnalyticsRepository interface {
	LogEvent(ctx context.Context, event *entities.SearchEvent) error
	GetZeroResultSearches(ctx context.Context, limit int) ([]*entities.SearchEvent, error)
}
