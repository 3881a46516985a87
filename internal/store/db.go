package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

const memoryPath = ":memory:"

type dbSettings struct {
	threads     int
	memoryLimit string
}

type DBOption func(*dbSettings)

// WithThreads caps the DuckDB worker threads. Zero keeps the default.
func WithThreads(n int) DBOption {
	return func(s *dbSettings) {
		s.threads = n
	}
}

// WithMemoryLimit sets a DuckDB size such as "512MB". Empty keeps the default.
func WithMemoryLimit(limit string) DBOption {
	return func(s *dbSettings) {
		s.memoryLimit = limit
	}
}

// NewDB opens the catalog database at path, ":memory:" included.
func NewDB(path string, opts ...DBOption) (*sql.DB, error) {
	settings := dbSettings{}
	for _, o := range opts {
		o(&settings)
	}

	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	// One writer at a time. Idle pooled connections would hold back checkpoints.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	for _, stmt := range settings.statements(path) {
		if _, err := conn.Exec(stmt); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("configuring database (%s): %w", stmt, err)
		}
	}

	return conn, nil
}

func (s dbSettings) statements(path string) []string {
	var stmts []string
	if path != memoryPath {
		// keep extensions next to the database, the home folder may be read-only
		stmts = append(stmts, fmt.Sprintf("SET extension_directory = %s", quoteLiteral(filepath.Dir(path))))
	}
	if s.threads > 0 {
		stmts = append(stmts, fmt.Sprintf("SET threads = %d", s.threads))
	}
	if s.memoryLimit != "" {
		stmts = append(stmts, fmt.Sprintf("SET memory_limit = %s", quoteLiteral(s.memoryLimit)))
	}
	return stmts
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
