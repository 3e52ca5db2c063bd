package entities

import (
	"time"
)

// SearchEvent represents a single search interaction for analytics.
type SearchEvent struct {
	ID               string    `json:"id" db:"id"`
	Date             string    `json:"date,omitempty" db:"date"`
	LocationQuery    string    `json:"location_query,omitempty" db:"location_query"`
	CategoryID       string    `json:"category_id,omitempty" db:"category_id"`
	LocationResolved bool      `json:"location_resolved" db:"location_resolved"`
	ResultCount      int       `json:"result_count" db:"result_count"`
	UnmatchableCount int       `json:"unmatchable_count" db:"unmatchable_count"`
	LatencyMs        int       `json:"latency_ms" db:"latency_ms"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
