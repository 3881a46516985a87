package store

import "database/sql"

// Store provides access to all storage repositories.
type Store struct {
	db        *sql.DB
	catalogs  *CatalogStore
	resources *ResourceStore
}

func NewStore(db *sql.DB) *Store {
	q := newTracedQuerier(db)
	return &Store{
		db:        db,
		catalogs:  NewCatalogStore(db, q),
		resources: NewResourceStore(q),
	}
}

func (s *Store) Catalogs() *CatalogStore {
	return s.catalogs
}

func (s *Store) Resources() *ResourceStore {
	return s.resources
}

func (s *Store) Close() error {
	return s.db.Close()
}
