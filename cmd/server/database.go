package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lessonkit/internal/config"
	"github.com/phrazzld/lessonkit/internal/platform/migrate"
	"github.com/phrazzld/lessonkit/internal/platform/postgres"
	"github.com/phrazzld/lessonkit/internal/platform/sqlite"
	"github.com/phrazzld/lessonkit/internal/store"
)

// rosterDatabase bundles the roster connection with the store and backupper
// matching its driver.
type rosterDatabase struct {
	db        *sql.DB
	store     store.RosterStore
	backupper store.Backupper
}

// setupRosterDatabase opens the configured roster database and applies
// pending migrations. PostgreSQL rosters are not backed up locally.
func setupRosterDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*rosterDatabase, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.OpenAndMigrate(ctx, cfg.URL, logger)
		if err != nil {
			return nil, err
		}
		return &rosterDatabase{db: db, store: postgres.NewPostgresRosterStore(db, logger)}, nil

	case config.DriverSQLite:
		db, err := sqlite.OpenAndMigrate(ctx, cfg.Path, logger)
		if err != nil {
			return nil, err
		}
		return &rosterDatabase{
			db:        db,
			store:     sqlite.NewSQLiteRosterStore(db, logger),
			backupper: sqlite.NewBackupper(db, cfg.Path, cfg.BackupDir, logger, nil),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// migrationSource picks the embedded migrations for the configured driver.
func migrationSource(cfg config.DatabaseConfig) (migrate.Source, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Migrations, nil
	case config.DriverSQLite:
		return sqlite.Migrations, nil
	default:
		return migrate.Source{}, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
