package services

import (
	"context"
	"time"

	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/internal/domain/repositories"
)

// AvailabilityFilter removes suppliers marked unavailable on a given day.
// A day is binary per supplier: one unavailable record blocks the whole day.
type AvailabilityFilter struct {
	repo repositories.AvailabilityRepository
}

// NewAvailabilityFilter creates a new availability filter
func NewAvailabilityFilter(repo repositories.AvailabilityRepository) *AvailabilityFilter {
	return &AvailabilityFilter{repo: repo}
}

// FilterAvailable returns the suppliers without an unavailable record on
// date, preserving input order. A nil date disables filtering.
func (f *AvailabilityFilter) FilterAvailable(ctx context.Context, suppliers []*entities.Supplier, date *time.Time) ([]*entities.Supplier, error) {
	if date == nil {
		return suppliers, nil
	}

	excludedIDs, err := f.repo.ListUnavailableSupplierIDs(ctx, *date)
	if err != nil {
		return nil, err
	}
	if len(excludedIDs) == 0 {
		return suppliers, nil
	}

	excluded := make(map[string]struct{}, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = struct{}{}
	}

	available := make([]*entities.Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		if _, ok := excluded[s.ID]; ok {
			continue
		}
		available = append(available, s)
	}
	return available, nil
}
