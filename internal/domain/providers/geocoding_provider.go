package providers

import (
	"context"

	"github.com/petrecem/petrecem-backend/internal/domain/entities"
)

// GeocodingProvider defines the interface for place-name resolution.
// Implementations talk to an external, rate-limited service and must treat
// it as unreliable: lookups can time out, return nothing, or match a
// same-named place abroad.
type GeocodingProvider interface {
	// Resolve converts a free-text place query to a location. Returns a
	// NotFound error when the service has no in-country candidate.
	Resolve(ctx context.Context, query string) (*entities.ResolvedLocation, error)

	// ReverseResolve converts a coordinate pair (typically a map click) to
	// a location. Returns a NotFound error for out-of-country points.
	ReverseResolve(ctx context.Context, lat, lon float64) (*entities.ResolvedLocation, error)
}
