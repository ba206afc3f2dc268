package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/lessonkit/internal/platform/migrate"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations is the goose source for the PostgreSQL schema.
var Migrations = migrate.Source{Dialect: "postgres", FS: migrationsFS, Dir: "migrations"}

// Open connects to the database at url and verifies the connection.
func Open(ctx context.Context, url string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")
	return db, nil
}

// OpenAndMigrate opens the database and applies pending migrations.
func OpenAndMigrate(ctx context.Context, url string, logger *slog.Logger) (*sql.DB, error) {
	db, err := Open(ctx, url, logger)
	if err != nil {
		return nil, err
	}
	if err := migrate.Up(ctx, db, Migrations, logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
