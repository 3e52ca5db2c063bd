package services

import (
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/pkg/geo"
)

// RadiusMatch is one travel candidate within its own travel radius
type RadiusMatch struct {
	Supplier   *entities.Supplier
	DistanceKm float64
}

// RadiusResult carries the matches plus the count of candidates whose
// county matched no known centroid
type RadiusResult struct {
	Matches     []RadiusMatch
	Unmatchable int
}

// RadiusMatcher keeps travel candidates whose county centroid lies within
// the supplier's own travel radius of the search origin. Exact supplier
// coordinates do not exist in the catalog; the county centroid is a coarse
// stand-in, so distances are approximate.
type RadiusMatcher struct{}

// NewRadiusMatcher creates a new radius matcher
func NewRadiusMatcher() *RadiusMatcher {
	return &RadiusMatcher{}
}

// WithinRadius filters candidates by great-circle distance from origin,
// sorted by distance ascending with supplier ID as the deterministic
// tie-break. Candidates with no resolvable county are counted, not errored.
func (m *RadiusMatcher) WithinRadius(candidates []*entities.Supplier, origin geo.Coordinates) RadiusResult {
	var result RadiusResult

	for _, s := range candidates {
		centroid, ok := m.centroidFor(s)
		if !ok {
			log.Debug().
				Str("supplier_id", s.ID).
				Str("county", s.County).
				Msg("supplier county matches no known centroid, skipping radius match")
			result.Unmatchable++
			continue
		}

		distance := geo.DistanceKm(origin, centroid)
		if distance > float64(s.TravelRadiusKm) {
			continue
		}

		result.Matches = append(result.Matches, RadiusMatch{Supplier: s, DistanceKm: distance})
	}

	sort.Slice(result.Matches, func(i, j int) bool {
		if result.Matches[i].DistanceKm != result.Matches[j].DistanceKm {
			return result.Matches[i].DistanceKm < result.Matches[j].DistanceKm
		}
		return result.Matches[i].Supplier.ID < result.Matches[j].Supplier.ID
	})

	return result
}

// centroidFor tries the structured county field first, then falls back to
// scanning the free-text address for a county name
func (m *RadiusMatcher) centroidFor(s *entities.Supplier) (geo.Coordinates, bool) {
	if c, ok := geo.CountyCentroid(s.County); ok {
		return c, true
	}
	if _, c, ok := geo.MatchCounty(s.Address); ok {
		return c, true
	}
	return geo.Coordinates{}, false
}
