package store

import (
	"context"
	"database/sql"
)

// DBTX is the query surface the SQL roster stores and the SQLite backupper
// need. *sql.DB and *sql.Tx both satisfy it, so a store built on a pool can
// be rebound to a transaction with WithTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
