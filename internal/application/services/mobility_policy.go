package services

import (
	"strings"

	"github.com/petrecem/petrecem-backend/pkg/geo"
)

// MobilityPolicy decides which categories may take part in travel-radius
// matching. Location-bound category types (venues, halls, estates) stay
// excluded even when a supplier flags itself as available for travel; the
// rule is enforced here at filter time, not only at data entry.
type MobilityPolicy struct {
	stationaryMarkers []string
}

// DefaultMobilityPolicy returns the policy with the marketplace's fixed
// marker list. Markers are matched as substrings of the normalized
// category name.
func DefaultMobilityPolicy() MobilityPolicy {
	return MobilityPolicy{
		stationaryMarkers: []string{
			"salon",
			"sala",
			"ballroom",
			"restaurant",
			"conac",
			"castel",
			"domeniu",
			"terasa",
		},
	}
}

// NewMobilityPolicy builds a policy from an explicit marker list
func NewMobilityPolicy(stationaryMarkers []string) MobilityPolicy {
	normalized := make([]string, 0, len(stationaryMarkers))
	for _, m := range stationaryMarkers {
		normalized = append(normalized, geo.NormalizeName(m))
	}
	return MobilityPolicy{stationaryMarkers: normalized}
}

// CategoryEligible reports whether a category name may travel
func (p MobilityPolicy) CategoryEligible(name string) bool {
	normalized := geo.NormalizeName(name)
	for _, marker := range p.stationaryMarkers {
		if strings.Contains(normalized, marker) {
			return false
		}
	}
	return true
}
