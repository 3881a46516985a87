package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

// QueryInterceptor runs statements against the database or a transaction.
type QueryInterceptor interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// tracedQuerier logs every statement with its duration on the store logger.
type tracedQuerier struct {
	next   QueryInterceptor
	logger *zap.SugaredLogger
}

func newTracedQuerier(next QueryInterceptor) *tracedQuerier {
	return &tracedQuerier{
		next:   next,
		logger: zap.S().Named("store"),
	}
}

func (t *tracedQuerier) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := t.next.QueryRowContext(ctx, query, args...)
	t.trace("query_row", query, args, start, row.Err())
	return row
}

func (t *tracedQuerier) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.next.QueryContext(ctx, query, args...)
	t.trace("query", query, args, start, err)
	return rows, err
}

func (t *tracedQuerier) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := t.next.ExecContext(ctx, query, args...)
	t.trace("exec", query, args, start, err)
	return res, err
}

func (t *tracedQuerier) trace(op, query string, args []any, start time.Time, err error) {
	fields := []any{"op", op, "query", compactQuery(query), "args", len(args), "duration", time.Since(start)}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		t.logger.Warnw("statement failed", append(fields, "error", err)...)
		return
	}
	t.logger.Debugw("statement", fields...)
}

// compactQuery folds the whitespace of multi-line statements.
func compactQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// withTx runs fn in a transaction committed when fn returns nil.
func withTx(ctx context.Context, db *sql.DB, fn func(q QueryInterceptor) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(newTracedQuerier(tx)); err != nil {
		return err
	}

	return tx.Commit()
}
