package entities

import "time"

// UnavailableDate marks a calendar day on which a supplier cannot take
// bookings. A day is binary available/unavailable per supplier; there is
// no partial-day or recurring unavailability.
type UnavailableDate struct {
	SupplierID string    `json:"supplier_id" db:"supplier_id"`
	Date       time.Time `json:"date" db:"date"`
}
