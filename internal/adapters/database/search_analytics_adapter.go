package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/internal/domain/repositories"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/petrecem/petrecem-backend/pkg/errors"
)

// SearchAnalyticsAdapter implements the SearchAnalyticsRepository interface
type SearchAnalyticsAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSearchAnalyticsAdapter creates a new search analytics adapter
func NewSearchAnalyticsAdapter(client *postgres.Client) repositories.SearchAnalyticsRepository {
	return &SearchAnalyticsAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// LogEvent persists one search event
func (a *SearchAnalyticsAdapter) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	record := goqu.Record{
		"id":                event.ID,
		"date":              event.Date,
		"location_query":    event.LocationQuery,
		"category_id":       event.CategoryID,
		"location_resolved": event.LocationResolved,
		"result_count":      event.ResultCount,
		"unmatchable_count": event.UnmatchableCount,
		"latency_ms":        event.LatencyMs,
		"created_at":        event.CreatedAt,
	}

	query, args, err := a.db.Insert("search_events").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to log search event", err)
	}
	return nil
}

// GetZeroResultSearches returns recent searches that produced no suppliers
func (a *SearchAnalyticsAdapter) GetZeroResultSearches(ctx context.Context, limit int) ([]*entities.SearchEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	query, args, err := a.db.Select(
		"id", "date", "location_query", "category_id", "location_resolved",
		"result_count", "unmatchable_count", "latency_ms", "created_at",
	).
		From("search_events").
		Where(goqu.Ex{"result_count": 0}).
		Order(goqu.C("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query search events", err)
	}
	defer rows.Close()

	events := []*entities.SearchEvent{}
	for rows.Next() {
		event := &entities.SearchEvent{}
		if err := rows.Scan(
			&event.ID,
			&event.Date,
			&event.LocationQuery,
			&event.CategoryID,
			&event.LocationResolved,
			&event.ResultCount,
			&event.UnmatchableCount,
			&event.LatencyMs,
			&event.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan search event", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
