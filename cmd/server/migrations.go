package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/lessonkit/internal/config"
	"github.com/phrazzld/lessonkit/internal/platform/migrate"
	"github.com/phrazzld/lessonkit/internal/platform/postgres"
	"github.com/phrazzld/lessonkit/internal/platform/sqlite"
)

// runMigrations executes a goose command against the configured roster
// database without starting the server.
func runMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	src, err := migrationSource(cfg.Database)
	if err != nil {
		return err
	}

	var db *sql.DB
	if cfg.Database.Driver == config.DriverPostgres {
		db, err = postgres.Open(ctx, cfg.Database.URL, logger)
	} else {
		db, err = sqlite.Open(ctx, cfg.Database.Path, logger)
	}
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("failed to close database", slog.String("error", cerr.Error()))
		}
	}()

	logger.Info("executing migrations",
		slog.String("command", command),
		slog.String("driver", cfg.Database.Driver))
	return migrate.Run(ctx, db, src, command, logger)
}
