package geo

import "math"

const earthRadiusKm = 6371.0

// Coordinates represents a geographical point
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceKm computes the great-circle distance between two points in
// kilometers using the Haversine formula
func DistanceKm(from, to Coordinates) float64 {
	lat1Rad := degreesToRadians(from.Latitude)
	lat2Rad := degreesToRadians(to.Latitude)
	deltaLat := degreesToRadians(to.Latitude - from.Latitude)
	deltaLon := degreesToRadians(to.Longitude - from.Longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// BoundingBox represents a rectangular geographic region
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// RomaniaBounds is the approximate bounding box for Romania. Geocoding
// results outside this box are rejected so that a query matching a
// same-named place abroad does not leak into search results.
var RomaniaBounds = BoundingBox{
	MinLat: 43.0,
	MaxLat: 49.0,
	MinLon: 20.0,
	MaxLon: 30.0,
}

// Contains reports whether the point falls inside the bounding box
func (b BoundingBox) Contains(c Coordinates) bool {
	return c.Latitude >= b.MinLat && c.Latitude <= b.MaxLat &&
		c.Longitude >= b.MinLon && c.Longitude <= b.MaxLon
}
