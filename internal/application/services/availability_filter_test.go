package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/petrecem/petrecem-backend/internal/application/services"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
)

type fakeAvailabilityRepo struct {
	// unavailable maps YYYY-MM-DD to the supplier IDs blocked that day
	unavailable map[string][]string
	err         error
}

func (f *fakeAvailabilityRepo) ListUnavailableSupplierIDs(ctx context.Context, date time.Time) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.unavailable[date.Format("2006-01-02")], nil
}

func (f *fakeAvailabilityRepo) ListForSupplier(ctx context.Context, supplierID string) ([]*entities.UnavailableDate, error) {
	return nil, nil
}

func (f *fakeAvailabilityRepo) Create(ctx context.Context, record *entities.UnavailableDate) error {
	return nil
}

func (f *fakeAvailabilityRepo) Delete(ctx context.Context, supplierID string, date time.Time) error {
	return nil
}

func suppliersWithIDs(ids ...string) []*entities.Supplier {
	out := make([]*entities.Supplier, 0, len(ids))
	for _, id := range ids {
		out = append(out, &entities.Supplier{ID: id})
	}
	return out
}

func supplierIDs(suppliers []*entities.Supplier) []string {
	out := make([]string, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, s.ID)
	}
	return out
}

func TestAvailabilityFilter_NoDateReturnsInputUnchanged(t *testing.T) {
	filter := services.NewAvailabilityFilter(&fakeAvailabilityRepo{
		unavailable: map[string][]string{"2026-06-20": {"sup-1"}},
	})

	input := suppliersWithIDs("sup-1", "sup-2")
	result, err := filter.FilterAvailable(context.Background(), input, nil)

	require.NoError(t, err)
	assert.Equal(t, input, result)
}

func TestAvailabilityFilter_RemovesUnavailableSuppliers(t *testing.T) {
	date := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	filter := services.NewAvailabilityFilter(&fakeAvailabilityRepo{
		unavailable: map[string][]string{"2026-06-20": {"sup-2", "sup-4"}},
	})

	result, err := filter.FilterAvailable(context.Background(), suppliersWithIDs("sup-1", "sup-2", "sup-3"), &date)

	require.NoError(t, err)
	assert.Equal(t, []string{"sup-1", "sup-3"}, supplierIDs(result))
}

func TestAvailabilityFilter_AllUnavailableYieldsEmpty(t *testing.T) {
	date := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	filter := services.NewAvailabilityFilter(&fakeAvailabilityRepo{
		unavailable: map[string][]string{"2026-06-20": {"sup-1", "sup-2"}},
	})

	result, err := filter.FilterAvailable(context.Background(), suppliersWithIDs("sup-1", "sup-2"), &date)

	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestAvailabilityFilter_ResultIsSubsetOfInput(t *testing.T) {
	date := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	filter := services.NewAvailabilityFilter(&fakeAvailabilityRepo{
		unavailable: map[string][]string{"2026-07-01": {"sup-9", "sup-2"}},
	})

	input := suppliersWithIDs("sup-1", "sup-2", "sup-3")
	result, err := filter.FilterAvailable(context.Background(), input, &date)

	require.NoError(t, err)
	inputSet := map[string]struct{}{}
	for _, id := range supplierIDs(input) {
		inputSet[id] = struct{}{}
	}
	for _, id := range supplierIDs(result) {
		assert.Contains(t, inputSet, id)
		assert.NotEqual(t, "sup-2", id)
	}
}
