package geo

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountyCentroid(t *testing.T) {
	c, ok := CountyCentroid("Cluj")
	assert.True(t, ok)
	assert.InDelta(t, 46.7833, c.Latitude, 0.0001)
	assert.InDelta(t, 23.6000, c.Longitude, 0.0001)

	_, ok = CountyCentroid("Atlantis")
	assert.False(t, ok)
}

func TestCountyCentroid_Diacritics(t *testing.T) {
	plain, ok := CountyCentroid("Brasov")
	assert.True(t, ok)

	diacritic, ok := CountyCentroid("Brașov")
	assert.True(t, ok)
	assert.Equal(t, plain, diacritic)

	timis, ok := CountyCentroid("Timiș")
	assert.True(t, ok)
	assert.InDelta(t, 45.7489, timis.Latitude, 0.0001)
}

func TestMatchCounty(t *testing.T) {
	county, centroid, ok := MatchCounty("Strada Republicii 5, Oradea, Bihor")
	assert.True(t, ok)
	assert.Equal(t, "bihor", county)
	assert.InDelta(t, 47.0667, centroid.Latitude, 0.0001)

	_, _, ok = MatchCounty("somewhere with no county at all")
	assert.False(t, ok)
}

func TestMatchCounty_StableOnMultipleMatches(t *testing.T) {
	// Both Bihor and Cluj appear; lookup order is alphabetical, so the
	// result must not flap between runs.
	county, _, ok := MatchCounty("Calea Clujului 10, Oradea, Bihor")
	assert.True(t, ok)
	assert.Equal(t, "bihor", county)
}

func TestMatchCounty_Concurrent(t *testing.T) {
	// MatchCounty runs on every radius-matched search request, so it must
	// be safe to call from concurrent searches. Run with -race.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				county, _, ok := MatchCounty("Piața Unirii 1, Cluj-Napoca, Cluj")
				assert.True(t, ok)
				assert.Equal(t, "cluj", county)
			}
		}()
	}
	wg.Wait()
}
