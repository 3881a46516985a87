package services

import (
	"context"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/internal/store"
	srvErrors "github.com/kubev2v/migration-discovery/pkg/errors"
	"github.com/kubev2v/migration-discovery/pkg/filter"
)

// LatestCatalogID selects the most recent catalog.
const LatestCatalogID = "latest"

type ResourceListParams struct {
	// CatalogID defaults to the latest catalog.
	CatalogID string
	Filter    filter.Expression
	Providers []models.Provider
	Limit     uint64
	Offset    uint64
}

// CatalogService reads the stored catalogs.
type CatalogService struct {
	store *store.Store
}

func NewCatalogService(s *store.Store) *CatalogService {
	return &CatalogService{store: s}
}

// List returns catalog summaries, newest first. A zero limit returns every catalog.
func (c *CatalogService) List(ctx context.Context, limit uint64) ([]models.CatalogSummary, error) {
	var opts []store.ListOption
	if limit > 0 {
		opts = append(opts, store.WithLimit(limit))
	}
	return c.store.Catalogs().List(ctx, opts...)
}

// Get returns a stored catalog. The id "latest" selects the most recent one.
func (c *CatalogService) Get(ctx context.Context, id string) (*models.Catalog, error) {
	if id == LatestCatalogID {
		return c.store.Catalogs().Latest(ctx)
	}
	return c.store.Catalogs().Get(ctx, id)
}

// ListResources returns one page of the resources of a catalog and the
// number of resources matching the filters.
func (c *CatalogService) ListResources(ctx context.Context, params ResourceListParams) ([]models.Resource, int, error) {
	catalogID := params.CatalogID
	if catalogID == "" || catalogID == LatestCatalogID {
		latest, err := c.store.Catalogs().List(ctx, store.WithLimit(1))
		if err != nil {
			return nil, 0, err
		}
		if len(latest) == 0 {
			return nil, 0, srvErrors.NewCatalogNotFoundError(LatestCatalogID)
		}
		catalogID = latest[0].ID
	}

	filters := []store.ListOption{
		store.ByFilter(params.Filter),
		store.ByProviders(params.Providers...),
	}

	total, err := c.store.Resources().Count(ctx, catalogID, filters...)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		if _, err := c.store.Catalogs().Get(ctx, catalogID); err != nil {
			return nil, 0, err
		}
	}

	opts := append(filters, store.WithDefaultSort())
	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, store.WithOffset(params.Offset))
	}

	resources, err := c.store.Resources().List(ctx, catalogID, opts...)
	if err != nil {
		return nil, 0, err
	}

	return resources, total, nil
}
