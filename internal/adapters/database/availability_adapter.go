package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/internal/domain/repositories"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/petrecem/petrecem-backend/pkg/errors"
)

// AvailabilityAdapter implements the AvailabilityRepository interface
type AvailabilityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAvailabilityAdapter creates a new availability adapter
func NewAvailabilityAdapter(client *postgres.Client) repositories.AvailabilityRepository {
	return &AvailabilityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// truncateToDay drops the time component; unavailability is per calendar day
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ListUnavailableSupplierIDs returns the IDs of all suppliers marked
// unavailable on the given day
func (a *AvailabilityAdapter) ListUnavailableSupplierIDs(ctx context.Context, date time.Time) ([]string, error) {
	query, args, err := a.db.Select("supplier_id").
		From("unavailable_dates").
		Where(goqu.Ex{"date": truncateToDay(date)}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query unavailable dates", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan unavailable date", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListForSupplier returns all unavailable dates of one supplier
func (a *AvailabilityAdapter) ListForSupplier(ctx context.Context, supplierID string) ([]*entities.UnavailableDate, error) {
	query, args, err := a.db.Select("supplier_id", "date").
		From("unavailable_dates").
		Where(goqu.Ex{"supplier_id": supplierID}).
		Order(goqu.C("date").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query unavailable dates", err)
	}
	defer rows.Close()

	records := []*entities.UnavailableDate{}
	for rows.Next() {
		record := &entities.UnavailableDate{}
		if err := rows.Scan(&record.SupplierID, &record.Date); err != nil {
			return nil, apperrors.NewInternalError("failed to scan unavailable date", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Create marks a day as unavailable for a supplier
func (a *AvailabilityAdapter) Create(ctx context.Context, record *entities.UnavailableDate) error {
	query, args, err := a.db.Insert("unavailable_dates").
		Rows(goqu.Record{
			"supplier_id": record.SupplierID,
			"date":        truncateToDay(record.Date),
		}).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create unavailable date", err)
	}
	return nil
}

// Delete removes an unavailable-date record
func (a *AvailabilityAdapter) Delete(ctx context.Context, supplierID string, date time.Time) error {
	query, args, err := a.db.Delete("unavailable_dates").
		Where(goqu.Ex{
			"supplier_id": supplierID,
			"date":        truncateToDay(date),
		}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete unavailable date", err)
	}
	return nil
}
