package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/internal/domain/repositories"
	"github.com/petrecem/petrecem-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/petrecem/petrecem-backend/pkg/errors"
)

// CategoryAdapter implements the CategoryRepository interface
type CategoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCategoryAdapter creates a new category adapter
func NewCategoryAdapter(client *postgres.Client) repositories.CategoryRepository {
	return &CategoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List retrieves all categories
func (a *CategoryAdapter) List(ctx context.Context) ([]*entities.Category, error) {
	query, args, err := a.db.Select("id", "name").
		From("categories").
		Order(goqu.C("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query categories", err)
	}
	defer rows.Close()

	categories := []*entities.Category{}
	for rows.Next() {
		category := &entities.Category{}
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan category", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// GetByID retrieves a category by ID
func (a *CategoryAdapter) GetByID(ctx context.Context, id string) (*entities.Category, error) {
	query, args, err := a.db.Select("id", "name").
		From("categories").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	category := &entities.Category{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&category.ID, &category.Name)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("category with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get category", err)
	}

	return category, nil
}

// Create creates a new category
func (a *CategoryAdapter) Create(ctx context.Context, category *entities.Category) error {
	query, args, err := a.db.Insert("categories").
		Rows(goqu.Record{"id": category.ID, "name": category.Name}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create category", err)
	}
	return nil
}
