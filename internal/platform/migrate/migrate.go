// Package migrate runs embedded goose migrations against a database handle.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// TableName is the goose version table used by every dialect.
const TableName = "schema_migrations"

// Supported commands
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandReset   = "reset"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// ErrUnknownCommand is returned for commands other than the ones above.
var ErrUnknownCommand = errors.New("unknown migration command")

// goose keeps its dialect, filesystem and logger in package globals.
var gooseMu sync.Mutex

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at info level.
func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level. It does not exit; the error is returned to
// the caller by the goose function that failed.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Source is a set of migrations for one dialect.
type Source struct {
	// Dialect is a goose dialect name such as "sqlite3" or "postgres".
	Dialect string
	// FS holds the migration files under Dir.
	FS  fs.FS
	Dir string
}

// Run executes a goose command (up, down, reset, status, version).
func Run(ctx context.Context, db *sql.DB, src Source, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(
		slog.String("correlation_id", uuid.New().String()),
		slog.String("component", "migrations"),
		slog.String("command", command),
		slog.String("dialect", src.Dialect),
	)

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetBaseFS(src.FS)
	defer goose.SetBaseFS(nil)
	goose.SetTableName(TableName)
	if err := goose.SetDialect(src.Dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	start := time.Now()
	var err error
	switch command {
	case CommandUp:
		err = goose.UpContext(ctx, db, src.Dir)
	case CommandDown:
		err = goose.DownContext(ctx, db, src.Dir)
	case CommandReset:
		err = goose.ResetContext(ctx, db, src.Dir)
	case CommandStatus:
		err = goose.StatusContext(ctx, db, src.Dir)
	case CommandVersion:
		err = goose.VersionContext(ctx, db, src.Dir)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
	if err != nil {
		log.Error("migration command failed", slog.String("error", err.Error()))
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("migration command completed", slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, src Source, logger *slog.Logger) error {
	return Run(ctx, db, src, CommandUp, logger)
}

// CurrentVersion reports the newest applied migration version.
func CurrentVersion(ctx context.Context, db *sql.DB, src Source) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetTableName(TableName)
	if err := goose.SetDialect(src.Dialect); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.GetDBVersionContext(ctx, db)
}
