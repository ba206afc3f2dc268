package testdb

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/lessonkit/internal/platform/postgres"
	"github.com/phrazzld/lessonkit/internal/redact"
)

// Open connects to the test database and applies pending migrations. The
// test is skipped when no database is configured, except in CI where a
// missing database fails the test. The connection is closed on cleanup.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		if isCIEnvironment() {
			t.Fatalf("%s not set in CI", EnvTestDatabaseURL)
		}
		t.Skipf("%s not set; skipping PostgreSQL integration test", EnvTestDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.OpenAndMigrate(ctx, url, nil)
	if err != nil {
		t.Fatalf("failed to open test database: %s", redact.Error(err))
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})
	return db
}

// WithTx runs fn in a transaction that is rolled back afterwards, also when
// fn panics.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %s", redact.Error(err))
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
