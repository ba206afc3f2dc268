package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/lessonkit/internal/platform/migrate"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations is the goose source for the SQLite schema.
var Migrations = migrate.Source{Dialect: "sqlite3", FS: migrationsFS, Dir: "migrations"}

// IsMemory reports whether path names an in-memory database.
func IsMemory(path string) bool {
	return path == MemoryPath || strings.Contains(path, "mode=memory")
}

// Open opens the database at path, enables foreign keys and waits on locks
// for up to five seconds. An in-memory database is limited to one
// connection, since each connection would otherwise see its own database.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if strings.Contains(path, "?") {
		dsn = path + "&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if IsMemory(path) {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(4)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	logger.Debug("sqlite database opened", slog.Bool("in_memory", IsMemory(path)))
	return db, nil
}

// OpenAndMigrate opens the database and applies pending migrations.
func OpenAndMigrate(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	db, err := Open(ctx, path, logger)
	if err != nil {
		return nil, err
	}
	if err := migrate.Up(ctx, db, Migrations, logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
