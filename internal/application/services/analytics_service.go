package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/internal/domain/providers"
	"github.com/petrecem/petrecem-backend/internal/domain/repositories"
)

// AnalyticsService persists search events for later analysis. Events
// arrive either directly via TrackSearch or through the event bus when the
// processing happens out of band.
type AnalyticsService struct {
	repo repositories.SearchAnalyticsRepository
	bus  providers.EventBus
}

// NewAnalyticsService creates a new analytics service. bus may be nil when
// events are tracked in-process only.
func NewAnalyticsService(repo repositories.SearchAnalyticsRepository, bus providers.EventBus) *AnalyticsService {
	return &AnalyticsService{repo: repo, bus: bus}
}

// TrackSearch records a search event in the background so the search
// request never waits on analytics
func (s *AnalyticsService) TrackSearch(event *entities.SearchEvent) {
	go func() {
		// The request context may already be cancelled by the time this runs.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.repo.LogEvent(ctx, event); err != nil {
			log.Warn().Err(err).Msg("failed to log search event")
		}
	}()
}

// Run subscribes to the search event channel and persists every event
// until ctx is cancelled
func (s *AnalyticsService) Run(ctx context.Context) error {
	events, err := s.bus.Subscribe(ctx, providers.EventChannelSearches)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.bus.Unsubscribe(context.Background(), providers.EventChannelSearches); err != nil {
			log.Warn().Err(err).Msg("failed to unsubscribe from search events")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := s.repo.LogEvent(ctx, event); err != nil {
				log.Warn().Err(err).Str("event_id", event.ID).Msg("failed to persist search event")
			}
		}
	}
}

// GetZeroResultSearches lists recent searches that returned nothing. They
// point at catalog gaps and geocoding misses.
func (s *AnalyticsService) GetZeroResultSearches(ctx context.Context, limit int) ([]*entities.SearchEvent, error) {
	return s.repo.GetZeroResultSearches(ctx, limit)
}
