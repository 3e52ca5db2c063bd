package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/petrecem/petrecem-backend/internal/adapters/database"
	"github.com/petrecem/petrecem-backend/internal/adapters/search"
	"github.com/petrecem/petrecem-backend/internal/application/services"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/internal/domain/repositories"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/clients/postgres"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/clients/typesense"
	"github.com/petrecem/petrecem-backend/pkg/config"
)

// Seeds a development database with Romanian categories, suppliers and a
// few unavailable dates. Run with RESET_DB=true to truncate first.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	ctx := context.Background()

	var searchRepo repositories.SupplierSearchRepository
	if tsClient, err := typesense.NewClient(&cfg.Typesense); err == nil {
		adapter := search.NewTypesenseAdapter(tsClient)
		if err := adapter.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	supplierRepo := database.NewSupplierAdapter(pgClient)
	categoryRepo := database.NewCategoryAdapter(pgClient)
	availabilityRepo := database.NewAvailabilityAdapter(pgClient)
	supplierService := services.NewSupplierService(supplierRepo, searchRepo, availabilityRepo)

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				supplier_categories,
				unavailable_dates,
				search_events,
				suppliers,
				categories
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to reset tables")
		}
	}

	// 1. Categories
	categories := []entities.Category{
		{ID: uuid.New().String(), Name: "Fotografi"},
		{ID: uuid.New().String(), Name: "Videografi"},
		{ID: uuid.New().String(), Name: "DJ și formații"},
		{ID: uuid.New().String(), Name: "Candy bar"},
		{ID: uuid.New().String(), Name: "Aranjamente florale"},
		{ID: uuid.New().String(), Name: "Saloane de evenimente"},
		{ID: uuid.New().String(), Name: "Restaurante"},
	}
	byName := map[string]entities.Category{}
	for _, category := range categories {
		category := category
		if err := categoryRepo.Create(ctx, &category); err != nil {
			log.Fatal().Err(err).Str("category", category.Name).Msg("failed to seed category")
		}
		byName[category.Name] = category
	}
	log.Info().Int("count", len(categories)).Msg("seeded categories")

	// 2. Suppliers
	suppliers := []entities.Supplier{
		{
			BusinessName:       "Foto Memoria",
			Description:        "Fotografie de nuntă și botez",
			Address:            "Strada Avram Iancu 12, Cluj-Napoca, Cluj",
			County:             "Cluj",
			Locality:           "Cluj-Napoca",
			PhoneNumber:        "+40 740 111 222",
			Email:              "contact@fotomemoria.ro",
			Categories:         []entities.Category{byName["Fotografi"], byName["Videografi"]},
			AvailableForTravel: true,
			TravelRadiusKm:     200,
			IsActive:           true,
		},
		{
			BusinessName:       "DJ Claudiu Events",
			Description:        "DJ pentru nunți și evenimente corporate",
			Address:            "Strada Republicii 5, Oradea, Bihor",
			County:             "Bihor",
			Locality:           "Oradea",
			PhoneNumber:        "+40 741 333 444",
			Email:              "claudiu@djevents.ro",
			Categories:         []entities.Category{byName["DJ și formații"]},
			AvailableForTravel: true,
			TravelRadiusKm:     150,
			IsActive:           true,
		},
		{
			BusinessName: "Salon Regal",
			Description:  "Salon de evenimente cu 300 de locuri",
			Address:      "Calea Dumbrăvii 99, Sibiu, Sibiu",
			County:       "Sibiu",
			Locality:     "Sibiu",
			PhoneNumber:  "+40 742 555 666",
			Email:        "rezervari@salonregal.ro",
			Categories:   []entities.Category{byName["Saloane de evenimente"], byName["Restaurante"]},
			IsActive:     true,
		},
		{
			BusinessName:       "Dulce Aniversare",
			Description:        "Candy bar și torturi personalizate",
			Address:            "Bulevardul Vasile Milea 3, Sibiu, Sibiu",
			County:             "Sibiu",
			Locality:           "Sibiu",
			PhoneNumber:        "+40 743 777 888",
			Email:              "hello@dulceaniversare.ro",
			Categories:         []entities.Category{byName["Candy bar"]},
			AvailableForTravel: true,
			TravelRadiusKm:     80,
			IsActive:           true,
		},
		{
			BusinessName:       "Flori de Timiș",
			Description:        "Aranjamente florale pentru evenimente",
			Address:            "Piața Unirii 8, Timișoara, Timiș",
			County:             "Timiș",
			Locality:           "Timișoara",
			PhoneNumber:        "+40 744 999 000",
			Email:              "comenzi@floridetimis.ro",
			Categories:         []entities.Category{byName["Aranjamente florale"]},
			AvailableForTravel: true,
			TravelRadiusKm:     100,
			IsActive:           true,
		},
	}

	seeded := make([]entities.Supplier, 0, len(suppliers))
	for _, supplier := range suppliers {
		supplier := supplier
		if err := supplierService.Create(ctx, &supplier); err != nil {
			log.Fatal().Err(err).Str("supplier", supplier.BusinessName).Msg("failed to seed supplier")
		}
		seeded = append(seeded, supplier)
	}
	log.Info().Int("count", len(seeded)).Msg("seeded suppliers")

	// 3. A few unavailable dates on upcoming Saturdays
	daysUntilSaturday := (int(time.Saturday) - int(time.Now().Weekday()) + 7) % 7
	if daysUntilSaturday == 0 {
		daysUntilSaturday = 7
	}
	nextSaturday := time.Now().AddDate(0, 0, daysUntilSaturday)
	for i, supplier := range seeded {
		if i%2 != 0 {
			continue
		}
		date := nextSaturday.AddDate(0, 0, 7*(i/2))
		if err := supplierService.MarkUnavailable(ctx, supplier.ID, date); err != nil {
			log.Fatal().Err(err).Str("supplier", supplier.BusinessName).Msg("failed to seed unavailable date")
		}
	}

	log.Info().Msg("seeding complete")
}
