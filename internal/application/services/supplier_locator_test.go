package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/petrecem/petrecem-backend/internal/application/services"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
)

func TestMobilityPolicy_StationaryCategoriesAreIneligible(t *testing.T) {
	policy := services.DefaultMobilityPolicy()

	tests := []struct {
		category string
		eligible bool
	}{
		{"Fotografi", true},
		{"DJ și formații", true},
		{"Candy bar", true},
		{"Saloane de evenimente", false},
		{"Săli de nuntă", false},
		{"Restaurante", false},
		{"Conace și castele", false},
		{"Domenii de evenimente", false},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.eligible, policy.CategoryEligible(tt.category))
		})
	}
}

func TestSupplierLocator_LocalMatchIsAddressSubstring(t *testing.T) {
	locator := services.NewSupplierLocator(services.DefaultMobilityPolicy())
	location := &entities.ResolvedLocation{CityName: "Sibiu"}

	local := &entities.Supplier{ID: "sup-1", Address: "Strada X, Sibiu, Sibiu"}
	diacritics := &entities.Supplier{ID: "sup-2", Locality: "Șelimbăr", Address: "Șoseaua Sibiului 3, Șelimbăr"}
	elsewhere := &entities.Supplier{ID: "sup-3", Address: "Strada Y, Cluj-Napoca", Locality: "Cluj-Napoca"}

	partition := locator.Locate([]*entities.Supplier{local, diacritics, elsewhere}, location, "")

	ids := make([]string, 0, len(partition.Local))
	for _, s := range partition.Local {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"sup-1", "sup-2"}, ids)
}

func TestSupplierLocator_MobileCandidatesRequireTravelFlagAndEligibleCategory(t *testing.T) {
	locator := services.NewSupplierLocator(services.DefaultMobilityPolicy())
	location := &entities.ResolvedLocation{CityName: "Cluj-Napoca"}

	photographer := &entities.Supplier{
		ID:                 "sup-1",
		Address:            "Oradea, Bihor",
		AvailableForTravel: true,
		Categories:         []entities.Category{{ID: "cat-photo", Name: "Fotografi"}},
	}
	// Travel-flagged venue: the category policy must still exclude it.
	venue := &entities.Supplier{
		ID:                 "sup-2",
		Address:            "Oradea, Bihor",
		AvailableForTravel: true,
		Categories:         []entities.Category{{ID: "cat-venue", Name: "Saloane de evenimente"}},
	}
	stationary := &entities.Supplier{
		ID:                 "sup-3",
		Address:            "Oradea, Bihor",
		AvailableForTravel: false,
		Categories:         []entities.Category{{ID: "cat-photo", Name: "Fotografi"}},
	}

	partition := locator.Locate([]*entities.Supplier{photographer, venue, stationary}, location, "")

	assert.Len(t, partition.MobileCandidates, 1)
	assert.Equal(t, "sup-1", partition.MobileCandidates[0].ID)
}

func TestSupplierLocator_CategoryPreFilterRestrictsBothSets(t *testing.T) {
	locator := services.NewSupplierLocator(services.DefaultMobilityPolicy())
	location := &entities.ResolvedLocation{CityName: "Sibiu"}

	localPhotographer := &entities.Supplier{
		ID:         "sup-1",
		Address:    "Sibiu",
		Categories: []entities.Category{{ID: "cat-photo", Name: "Fotografi"}},
	}
	localDJ := &entities.Supplier{
		ID:         "sup-2",
		Address:    "Sibiu",
		Categories: []entities.Category{{ID: "cat-dj", Name: "DJ"}},
	}
	mobileDJ := &entities.Supplier{
		ID:                 "sup-3",
		Address:            "Cluj-Napoca, Cluj",
		AvailableForTravel: true,
		Categories:         []entities.Category{{ID: "cat-dj", Name: "DJ"}},
	}

	partition := locator.Locate([]*entities.Supplier{localPhotographer, localDJ, mobileDJ}, location, "cat-dj")

	assert.Len(t, partition.Local, 1)
	assert.Equal(t, "sup-2", partition.Local[0].ID)
	assert.Len(t, partition.MobileCandidates, 1)
	assert.Equal(t, "sup-3", partition.MobileCandidates[0].ID)
}

func TestSupplierLocator_NilLocationYieldsNoLocals(t *testing.T) {
	locator := services.NewSupplierLocator(services.DefaultMobilityPolicy())

	mobile := &entities.Supplier{
		ID:                 "sup-1",
		Address:            "Sibiu",
		AvailableForTravel: true,
		Categories:         []entities.Category{{ID: "cat-photo", Name: "Fotografi"}},
	}

	partition := locator.Locate([]*entities.Supplier{mobile}, nil, "")

	assert.Empty(t, partition.Local)
	assert.Len(t, partition.MobileCandidates, 1)
}
