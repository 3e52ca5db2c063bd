package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/internal/domain/repositories"
	tsclient "github.com/petrecem/petrecem-backend/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements supplier keyword search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements SupplierSearchRepository
var _ repositories.SupplierSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the suppliers collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(tsclient.SuppliersCollection).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: tsclient.SuppliersCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "business_name", Type: "string"},
			{Name: "county", Type: "string", Facet: pointer.True()},
			{Name: "locality", Type: "string"},
			{Name: "categories", Type: "string[]", Facet: pointer.True()},
			{Name: "available_for_travel", Type: "bool"},
			{Name: "is_active", Type: "bool"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index indexes a supplier
func (a *TypesenseAdapter) Index(ctx context.Context, supplier *entities.Supplier) error {
	categoryNames := make([]string, 0, len(supplier.Categories))
	for _, c := range supplier.Categories {
		categoryNames = append(categoryNames, c.Name)
	}

	document := map[string]interface{}{
		"id":                   supplier.ID,
		"business_name":        supplier.BusinessName,
		"county":               supplier.County,
		"locality":             supplier.Locality,
		"categories":           categoryNames,
		"available_for_travel": supplier.AvailableForTravel,
		"is_active":            supplier.IsActive,
		"created_at":           supplier.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(tsclient.SuppliersCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index supplier: %w", err)
	}

	return nil
}

// Delete removes a supplier from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.SuppliersCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete supplier from index: %w", err)
	}
	return nil
}

// Search searches active suppliers by keyword across business name,
// locality and category names
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]*entities.Supplier, error) {
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("business_name,locality,categories"),
		FilterBy: pointer.String("is_active:=true"),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.SuppliersCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search suppliers: %w", err)
	}

	suppliers := []*entities.Supplier{}
	if result.Hits == nil {
		return suppliers, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		supplier := &entities.Supplier{}
		if val, ok := doc["id"].(string); ok {
			supplier.ID = val
		}
		if val, ok := doc["business_name"].(string); ok {
			supplier.BusinessName = val
		}
		if val, ok := doc["county"].(string); ok {
			supplier.County = val
		}
		if val, ok := doc["locality"].(string); ok {
			supplier.Locality = val
		}
		if val, ok := doc["available_for_travel"].(bool); ok {
			supplier.AvailableForTravel = val
		}
		if val, ok := doc["is_active"].(bool); ok {
			supplier.IsActive = val
		}
		if val, ok := doc["created_at"].(float64); ok {
			supplier.CreatedAt = time.Unix(int64(val), 0)
		}
		if names, ok := doc["categories"].([]interface{}); ok {
			for _, n := range names {
				if name, ok := n.(string); ok {
					supplier.Categories = append(supplier.Categories, entities.Category{Name: name})
				}
			}
		}

		suppliers = append(suppliers, supplier)
	}

	return suppliers, nil
}
