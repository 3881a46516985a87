package store

import (
	"context"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/pkg/filter"
)

// ResourceStore queries the resources of stored catalogs.
type ResourceStore struct {
	db QueryInterceptor
}

func NewResourceStore(db QueryInterceptor) *ResourceStore {
	return &ResourceStore{db: db}
}

// List returns the resources of a catalog in catalog order, narrowed by opts.
func (s *ResourceStore) List(ctx context.Context, catalogID string, opts ...ListOption) ([]models.Resource, error) {
	builder := sq.Select("document").
		From("resources").
		Where(sq.Eq{"catalog_id": catalogID})

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var r models.Resource
		if err := json.Unmarshal([]byte(doc), &r); err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}

	return resources, rows.Err()
}

// Count returns the number of resources of a catalog matching opts.
// Only pass filtering options: LIMIT and OFFSET would apply to the count row.
func (s *ResourceStore) Count(ctx context.Context, catalogID string, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").
		From("resources").
		Where(sq.Eq{"catalog_id": catalogID})

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// ListOption modifies a SELECT query for filtering/sorting/pagination.
type ListOption func(sq.SelectBuilder) sq.SelectBuilder

// ByFilter applies a parsed filter expression.
func ByFilter(expr filter.Expression) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if expr == nil {
			return b
		}
		return b.Where(expr.Sql())
	}
}

// ByProviders filters by provider (OR logic).
func ByProviders(providers ...models.Provider) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(providers) == 0 {
			return b
		}
		values := make([]string, 0, len(providers))
		for _, p := range providers {
			values = append(values, string(p))
		}
		return b.Where(sq.Eq{"provider": values})
	}
}

// WithLimit sets the LIMIT clause.
func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

// WithOffset sets the OFFSET clause.
func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

// WithDefaultSort keeps the catalog order.
func WithDefaultSort() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("position")
	}
}
