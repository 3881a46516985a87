package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/migration-discovery/internal/models"
	srvErrors "github.com/kubev2v/migration-discovery/pkg/errors"
)

// resourceBatchSize bounds the rows of one INSERT statement.
const resourceBatchSize = 500

var catalogSummaryColumns = []string{
	"id",
	"source",
	"scan_start_time",
	"scan_end_time",
	"resource_count",
	"unit_error_count",
	"dropped_records",
}

// CatalogStore keeps every catalog produced by a discovery run.
type CatalogStore struct {
	conn *sql.DB
	db   QueryInterceptor
}

func NewCatalogStore(conn *sql.DB, db QueryInterceptor) *CatalogStore {
	return &CatalogStore{conn: conn, db: db}
}

// Save stores the catalog document and one row per resource in a single transaction.
func (s *CatalogStore) Save(ctx context.Context, c *models.Catalog) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return err
	}

	return withTx(ctx, s.conn, func(q QueryInterceptor) error {
		query, args, err := sq.Insert("catalogs").
			Columns(append(catalogSummaryColumns, "document")...).
			Values(
				c.ID,
				c.Source,
				c.ScanStartTime.UTC(),
				c.ScanEndTime.UTC(),
				c.ResourceCount(),
				len(c.UnitErrors),
				c.DroppedRecords,
				string(doc),
			).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return err
		}

		for start := 0; start < len(c.Resources); start += resourceBatchSize {
			end := min(start+resourceBatchSize, len(c.Resources))
			if err := insertResources(ctx, q, c.ID, start, c.Resources[start:end]); err != nil {
				return err
			}
		}

		return nil
	})
}

func insertResources(ctx context.Context, q QueryInterceptor, catalogID string, offset int, resources []models.Resource) error {
	builder := sq.Insert("resources").Columns(
		"catalog_id", "position", "id", "provider", "kind", "name", "location",
		"size_class", "state", "os", "cpu_count", "memory_mb", "tags", "document",
	)

	for i, r := range resources {
		tags := r.Tags
		if tags == nil {
			tags = map[string]string{}
		}
		tagsDoc, err := json.Marshal(tags)
		if err != nil {
			return err
		}
		doc, err := json.Marshal(r)
		if err != nil {
			return err
		}

		builder = builder.Values(
			catalogID,
			offset+i,
			r.ID,
			string(r.Provider),
			r.Kind,
			nullString(r.Name),
			nullString(r.Location),
			nullString(r.SizeClass),
			nullString(r.State),
			nullString(r.OS),
			nullInt(int64(r.CPUCount)),
			nullInt(r.MemoryMB),
			string(tagsDoc),
			string(doc),
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, query, args...)
	return err
}

// Get returns the stored catalog document.
func (s *CatalogStore) Get(ctx context.Context, id string) (*models.Catalog, error) {
	query, args, err := sq.Select("document").
		From("catalogs").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	return s.scanDocument(s.db.QueryRowContext(ctx, query, args...), id)
}

// Latest returns the catalog with the most recent scan end time.
func (s *CatalogStore) Latest(ctx context.Context) (*models.Catalog, error) {
	query, args, err := sq.Select("document").
		From("catalogs").
		OrderBy("scan_end_time DESC", "created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	return s.scanDocument(s.db.QueryRowContext(ctx, query, args...), "latest")
}

func (s *CatalogStore) scanDocument(row *sql.Row, id string) (*models.Catalog, error) {
	var doc string
	err := row.Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewCatalogNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}

	var c models.Catalog
	if err := json.Unmarshal([]byte(doc), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns catalog summaries, newest first.
func (s *CatalogStore) List(ctx context.Context, opts ...ListOption) ([]models.CatalogSummary, error) {
	builder := sq.Select(catalogSummaryColumns...).
		From("catalogs").
		OrderBy("scan_end_time DESC", "created_at DESC")

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

	summaries := []models.CatalogSummary{}
	for rows.Next() {
		var c models.CatalogSummary
		if err := rows.Scan(
			&c.ID,
			&c.Source,
			&c.ScanStartTime,
			&c.ScanEndTime,
			&c.ResourceCount,
			&c.UnitErrorCount,
			&c.DroppedRecords,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, c)
	}

	return summaries, rows.Err()
}

// Prune deletes every catalog but the keep most recent ones, with their resources.
func (s *CatalogStore) Prune(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}

	stale := sq.Select("id").
		From("catalogs").
		OrderBy("scan_end_time DESC", "created_at DESC").
		Offset(uint64(keep))

	var pruned int
	err := withTx(ctx, s.conn, func(q QueryInterceptor) error {
		query, args, err := stale.ToSql()
		if err != nil {
			return err
		}
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		var ids []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			ids = append(ids, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		for _, table := range []struct{ name, key string }{{"resources", "catalog_id"}, {"catalogs", "id"}} {
			query, args, err := sq.Delete(table.name).Where(sq.Eq{table.key: ids}).ToSql()
			if err != nil {
				return err
			}
			if _, err := q.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}

		pruned = len(ids)
		return nil
	})

	return pruned, err
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}
