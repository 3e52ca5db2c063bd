package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/petrecem/petrecem-backend/internal/domain/entities"
	"github.com/petrecem/petrecem-backend/internal/domain/providers"
	"github.com/petrecem/petrecem-backend/internal/domain/repositories"
)

const (
	supplierCacheTTL    = 300 // seconds
	supplierCachePrefix = "supplier:v1:"
)

// CachedSupplierAdapter wraps a SupplierRepository with read-through
// caching. Writes invalidate the affected keys; list caches are keyed by
// filter so only exact repeats benefit, which is where the marketplace
// search spends most of its reads.
type CachedSupplierAdapter struct {
	inner repositories.SupplierRepository
	cache providers.CacheProvider
}

// NewCachedSupplierAdapter creates a caching supplier adapter
func NewCachedSupplierAdapter(inner repositories.SupplierRepository, cache providers.CacheProvider) repositories.SupplierRepository {
	return &CachedSupplierAdapter{
		inner: inner,
		cache: cache,
	}
}

// Create creates a supplier and invalidates list caches
func (a *CachedSupplierAdapter) Create(ctx context.Context, supplier *entities.Supplier) error {
	if err := a.inner.Create(ctx, supplier); err != nil {
		return err
	}
	a.invalidate(ctx, supplier.ID)
	return nil
}

// GetByID retrieves a supplier, preferring the cache
func (a *CachedSupplierAdapter) GetByID(ctx context.Context, id string) (*entities.Supplier, error) {
	key := supplierCachePrefix + id

	if cached, err := a.cache.Get(ctx, key); err == nil && len(cached) > 0 {
		var supplier entities.Supplier
		if err := json.Unmarshal(cached, &supplier); err == nil {
			return &supplier, nil
		}
	}

	supplier, err := a.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(supplier); err == nil {
		_ = a.cache.Set(ctx, key, payload, supplierCacheTTL)
	}
	return supplier, nil
}

// GetByIDs retrieves multiple suppliers, bypassing the cache
func (a *CachedSupplierAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Supplier, error) {
	return a.inner.GetByIDs(ctx, ids)
}

// Update updates a supplier and invalidates its cache entry
func (a *CachedSupplierAdapter) Update(ctx context.Context, supplier *entities.Supplier) error {
	if err := a.inner.Update(ctx, supplier); err != nil {
		return err
	}
	a.invalidate(ctx, supplier.ID)
	return nil
}

// List retrieves suppliers, preferring the cache for repeated filters
func (a *CachedSupplierAdapter) List(ctx context.Context, filter repositories.SupplierFilter) ([]*entities.Supplier, error) {
	key := listCacheKey(filter)

	if cached, err := a.cache.Get(ctx, key); err == nil && len(cached) > 0 {
		var suppliers []*entities.Supplier
		if err := json.Unmarshal(cached, &suppliers); err == nil {
			return suppliers, nil
		}
	}

	suppliers, err := a.inner.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(suppliers); err == nil {
		_ = a.cache.Set(ctx, key, payload, supplierCacheTTL)
	}
	return suppliers, nil
}

// SearchByName is not cached; keyword queries rarely repeat exactly
func (a *CachedSupplierAdapter) SearchByName(ctx context.Context, query string, limit int) ([]*entities.Supplier, error) {
	return a.inner.SearchByName(ctx, query, limit)
}

func (a *CachedSupplierAdapter) invalidate(ctx context.Context, supplierID string) {
	if err := a.cache.Delete(ctx, supplierCachePrefix+supplierID); err != nil {
		log.Warn().Err(err).Str("supplier_id", supplierID).Msg("failed to invalidate supplier cache")
	}
	// List caches expire via TTL; enumerating filter keys is not worth it.
}

func listCacheKey(filter repositories.SupplierFilter) string {
	active := ""
	if filter.IsActive != nil {
		active = fmt.Sprintf("%t", *filter.IsActive)
	}
	return fmt.Sprintf("%slist:%s:%s:%s:%d:%d",
		supplierCachePrefix, filter.CategoryID, filter.County, active, filter.Limit, filter.Offset)
}
