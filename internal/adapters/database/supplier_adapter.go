package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/internal/domain/repositories"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/petrecem/petrecem-backend/pkg/errors"
)

// SupplierAdapter implements the SupplierRepository interface
type SupplierAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSupplierAdapter creates a new supplier adapter
func NewSupplierAdapter(client *postgres.Client) repositories.SupplierRepository {
	return &SupplierAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var supplierColumns = []interface{}{
	"id", "business_name", "description", "address", "county", "locality",
	"phone_number", "email", "website", "available_for_travel",
	"travel_radius_km", "is_active", "created_at", "updated_at",
}

// Create creates a new supplier with its category links
func (a *SupplierAdapter) Create(ctx context.Context, supplier *entities.Supplier) error {
	record := goqu.Record{
		"id":                   supplier.ID,
		"business_name":        supplier.BusinessName,
		"description":          supplier.Description,
		"address":              supplier.Address,
		"county":               supplier.County,
		"locality":             supplier.Locality,
		"phone_number":         supplier.PhoneNumber,
		"email":                supplier.Email,
		"website":              supplier.Website,
		"available_for_travel": supplier.AvailableForTravel,
		"travel_radius_km":     supplier.TravelRadiusKm,
		"is_active":            supplier.IsActive,
		"created_at":           supplier.CreatedAt,
		"updated_at":           supplier.UpdatedAt,
	}

	query, args, err := a.db.Insert("suppliers").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create supplier", err)
	}

	return a.replaceCategoryLinks(ctx, supplier)
}

// GetByID retrieves a supplier by ID
func (a *SupplierAdapter) GetByID(ctx context.Context, id string) (*entities.Supplier, error) {
	query, args, err := a.db.Select(supplierColumns...).
		From("suppliers").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	supplier, err := a.scanSupplier(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("supplier with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get supplier", err)
	}

	if err := a.attachCategories(ctx, []*entities.Supplier{supplier}); err != nil {
		return nil, err
	}
	return supplier, nil
}

// GetByIDs retrieves multiple suppliers by their IDs
func (a *SupplierAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Supplier, error) {
	if len(ids) == 0 {
		return []*entities.Supplier{}, nil
	}

	query, args, err := a.db.Select(supplierColumns...).
		From("suppliers").
		Where(goqu.Ex{"id": ids}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.querySuppliers(ctx, query, args)
}

// Update updates a supplier and its category links
func (a *SupplierAdapter) Update(ctx context.Context, supplier *entities.Supplier) error {
	supplier.UpdatedAt = time.Now()

	record := goqu.Record{
		"business_name":        supplier.BusinessName,
		"description":          supplier.Description,
		"address":              supplier.Address,
		"county":               supplier.County,
		"locality":             supplier.Locality,
		"phone_number":         supplier.PhoneNumber,
		"email":                supplier.Email,
		"website":              supplier.Website,
		"available_for_travel": supplier.AvailableForTravel,
		"travel_radius_km":     supplier.TravelRadiusKm,
		"is_active":            supplier.IsActive,
		"updated_at":           supplier.UpdatedAt,
	}

	query, args, err := a.db.Update("suppliers").
		Set(record).
		Where(goqu.Ex{"id": supplier.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update supplier", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("supplier with id %s not found", supplier.ID))
	}

	return a.replaceCategoryLinks(ctx, supplier)
}

// List retrieves suppliers with their categories attached
func (a *SupplierAdapter) List(ctx context.Context, filter repositories.SupplierFilter) ([]*entities.Supplier, error) {
	ds := a.db.Select(supplierColumns...).From("suppliers")

	if filter.CategoryID != "" {
		sub := a.db.Select("supplier_id").
			From("supplier_categories").
			Where(goqu.Ex{"category_id": filter.CategoryID})
		ds = ds.Where(goqu.C("id").In(sub))
	}
	if filter.County != "" {
		ds = ds.Where(goqu.C("county").ILike(filter.County))
	}
	if filter.IsActive != nil {
		ds = ds.Where(goqu.Ex{"is_active": *filter.IsActive})
	}

	ds = ds.Order(goqu.C("business_name").Asc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.querySuppliers(ctx, query, args)
}

// SearchByName retrieves active suppliers whose business name contains the query
func (a *SupplierAdapter) SearchByName(ctx context.Context, search string, limit int) ([]*entities.Supplier, error) {
	if limit <= 0 {
		limit = 30
	}

	query, args, err := a.db.Select(supplierColumns...).
		From("suppliers").
		Where(
			goqu.C("is_active").IsTrue(),
			goqu.C("business_name").ILike("%"+search+"%"),
		).
		Order(goqu.C("business_name").Asc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build search query", err)
	}

	return a.querySuppliers(ctx, query, args)
}

func (a *SupplierAdapter) querySuppliers(ctx context.Context, query string, args []interface{}) ([]*entities.Supplier, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query suppliers", err)
	}
	defer rows.Close()

	suppliers := []*entities.Supplier{}
	for rows.Next() {
		supplier, err := a.scanSupplier(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan supplier", err)
		}
		suppliers = append(suppliers, supplier)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate suppliers", err)
	}

	if err := a.attachCategories(ctx, suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *SupplierAdapter) scanSupplier(row rowScanner) (*entities.Supplier, error) {
	supplier := &entities.Supplier{}
	var website sql.NullString

	err := row.Scan(
		&supplier.ID,
		&supplier.BusinessName,
		&supplier.Description,
		&supplier.Address,
		&supplier.County,
		&supplier.Locality,
		&supplier.PhoneNumber,
		&supplier.Email,
		&website,
		&supplier.AvailableForTravel,
		&supplier.TravelRadiusKm,
		&supplier.IsActive,
		&supplier.CreatedAt,
		&supplier.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	supplier.Website = website.String
	return supplier, nil
}

// attachCategories loads category links for a batch of suppliers in one query
func (a *SupplierAdapter) attachCategories(ctx context.Context, suppliers []*entities.Supplier) error {
	if len(suppliers) == 0 {
		return nil
	}

	ids := make([]string, len(suppliers))
	byID := make(map[string]*entities.Supplier, len(suppliers))
	for i, s := range suppliers {
		ids[i] = s.ID
		byID[s.ID] = s
		s.Categories = []entities.Category{}
	}

	query, args, err := a.db.Select(
		goqu.I("sc.supplier_id"),
		goqu.I("c.id"),
		goqu.I("c.name"),
	).
		From(goqu.T("supplier_categories").As("sc")).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.I("sc.category_id").Eq(goqu.I("c.id")))).
		Where(goqu.I("sc.supplier_id").In(ids)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build category link query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to query category links", err)
	}
	defer rows.Close()

	for rows.Next() {
		var supplierID string
		var category entities.Category
		if err := rows.Scan(&supplierID, &category.ID, &category.Name); err != nil {
			return apperrors.NewInternalError("failed to scan category link", err)
		}
		if s, ok := byID[supplierID]; ok {
			s.Categories = append(s.Categories, category)
		}
	}
	return rows.Err()
}

// replaceCategoryLinks rewrites the supplier_categories rows for a supplier
func (a *SupplierAdapter) replaceCategoryLinks(ctx context.Context, supplier *entities.Supplier) error {
	deleteQuery, deleteArgs, err := a.db.Delete("supplier_categories").
		Where(goqu.Ex{"supplier_id": supplier.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build category unlink query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return apperrors.NewInternalError("failed to unlink supplier categories", err)
	}

	if len(supplier.Categories) == 0 {
		return nil
	}

	records := make([]interface{}, 0, len(supplier.Categories))
	for _, c := range supplier.Categories {
		records = append(records, goqu.Record{
			"supplier_id": supplier.ID,
			"category_id": c.ID,
		})
	}

	insertQuery, insertArgs, err := a.db.Insert("supplier_categories").Rows(records...).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build category link query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return apperrors.NewInternalError("failed to link supplier categories", err)
	}

	return nil
}
