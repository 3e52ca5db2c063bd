package entities

import (
	"time"
)

// Supplier represents an event service supplier in the marketplace
type Supplier struct {
	ID                 string     `json:"id" db:"id"`
	BusinessName       string     `json:"business_name" db:"business_name"`
	Description        string     `json:"description" db:"description"`
	Address            string     `json:"address" db:"address"`
	County             string     `json:"county" db:"county"`
	Locality           string     `json:"locality" db:"locality"`
	PhoneNumber        string     `json:"phone_number" db:"phone_number"`
	Email              string     `json:"email" db:"email"`
	Website            string     `json:"website,omitempty" db:"website"`
	Categories         []Category `json:"categories" db:"-"`
	AvailableForTravel bool       `json:"available_for_travel" db:"available_for_travel"`
	TravelRadiusKm     int        `json:"travel_radius_km" db:"travel_radius_km"`
	IsActive           bool       `json:"is_active" db:"is_active"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// HasCategory reports whether the supplier is linked to the given category
func (s *Supplier) HasCategory(categoryID string) bool {
	for _, c := range s.Categories {
		if c.ID == categoryID {
			return true
		}
	}
	return false
}
