package services

import (
	"strings"

	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/pkg/geo"
)

// Partition splits a supplier catalog for one resolved search location
type Partition struct {
	Local            []*entities.Supplier
	MobileCandidates []*entities.Supplier
}

// SupplierLocator partitions suppliers into local matches and travel
// candidates. Local matching is a substring heuristic over the free-text
// address: the supplier address field is unstructured, so false positives
// ("Sibiu" inside "Sibiu de Jos") and negatives are possible.
type SupplierLocator struct {
	policy MobilityPolicy
}

// NewSupplierLocator creates a new supplier locator
func NewSupplierLocator(policy MobilityPolicy) *SupplierLocator {
	return &SupplierLocator{policy: policy}
}

// Locate partitions suppliers against a resolved location. A supplier can
// appear in both sets; callers deduplicate with local taking precedence.
// An optional category ID restricts both sets before partitioning.
func (l *SupplierLocator) Locate(suppliers []*entities.Supplier, location *entities.ResolvedLocation, categoryID string) Partition {
	var partition Partition

	cityName := ""
	if location != nil {
		cityName = geo.NormalizeName(location.CityName)
	}

	for _, s := range suppliers {
		if categoryID != "" && !s.HasCategory(categoryID) {
			continue
		}

		if cityName != "" && l.isLocal(s, cityName) {
			partition.Local = append(partition.Local, s)
		}

		if s.AvailableForTravel && l.mobileEligible(s) {
			partition.MobileCandidates = append(partition.MobileCandidates, s)
		}
	}

	return partition
}

func (l *SupplierLocator) isLocal(s *entities.Supplier, normalizedCity string) bool {
	if strings.Contains(geo.NormalizeName(s.Address), normalizedCity) {
		return true
	}
	return strings.Contains(geo.NormalizeName(s.Locality), normalizedCity)
}

// mobileEligible requires at least one category the policy allows to travel
func (l *SupplierLocator) mobileEligible(s *entities.Supplier) bool {
	for _, c := range s.Categories {
		if l.policy.CategoryEligible(c.Name) {
			return true
		}
	}
	return false
}
