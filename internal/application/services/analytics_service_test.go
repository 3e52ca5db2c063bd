package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/petrecem/petrecem-backend/internal/application/services"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
)

type fakeAnalyticsRepo struct {
	mu     sync.Mutex
	events []*entities.SearchEvent
}

func (f *fakeAnalyticsRepo) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAnalyticsRepo) GetZeroResultSearches(ctx context.Context, limit int) ([]*entities.SearchEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*entities.SearchEvent{}
	for _, e := range f.events {
		if e.ResultCount == 0 {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAnalyticsRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type fakeEventBus struct {
	events chan *entities.SearchEvent
}

func (f *fakeEventBus) Publish(ctx context.Context, channel string, event *entities.SearchEvent) error {
	f.events <- event
	return nil
}

func (f *fakeEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.SearchEvent, error) {
	return f.events, nil
}

func (f *fakeEventBus) Unsubscribe(ctx context.Context, channel string) error { return nil }

func (f *fakeEventBus) Close() error { return nil }

func TestAnalyticsService_TrackSearchPersistsInBackground(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	service := services.NewAnalyticsService(repo, nil)

	service.TrackSearch(&entities.SearchEvent{ID: "evt-1", ResultCount: 3})

	require.Eventually(t, func() bool {
		return repo.count() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestAnalyticsService_RunPersistsBusEvents(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	bus := &fakeEventBus{events: make(chan *entities.SearchEvent, 1)}
	service := services.NewAnalyticsService(repo, bus)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- service.Run(ctx)
	}()

	require.NoError(t, bus.Publish(ctx, "search:performed", &entities.SearchEvent{ID: "evt-1"}))

	require.Eventually(t, func() bool {
		return repo.count() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}

func TestAnalyticsService_ZeroResultSearches(t *testing.T) {
	repo := &fakeAnalyticsRepo{events: []*entities.SearchEvent{
		{ID: "evt-1", ResultCount: 0, LocationQuery: "Nicăieri"},
		{ID: "evt-2", ResultCount: 5},
	}}
	service := services.NewAnalyticsService(repo, nil)

	events, err := service.GetZeroResultSearches(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "evt-1", events[0].ID)
}
