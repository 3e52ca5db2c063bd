package entities

// ResolvedLocation is the ephemeral result of a geocoding lookup for one
// search request. It is never persisted.
type ResolvedLocation struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name"`
	// CityName is derived from the geocoder's address components and is
	// best-effort: when no city-like component exists it falls back to the
	// first display-name segment.
	CityName string `json:"city_name"`
}

// RankedSupplier is a supplier annotated with how it matched a search
type RankedSupplier struct {
	Supplier *Supplier `json:"supplier"`
	IsLocal  bool      `json:"is_local"`
	IsMobile bool      `json:"is_mobile"`
	// DistanceKm is set only for mobile matches, measured from the resolved
	// search location to the supplier's county centroid.
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// SearchResult is the ranked outcome of one search request
type SearchResult struct {
	Suppliers []RankedSupplier  `json:"suppliers"`
	Location  *ResolvedLocation `json:"location,omitempty"`
	// Unmatchable counts mobile candidates skipped because their county
	// matched no known centroid. They are not an error.
	Unmatchable int `json:"unmatchable"`
}
