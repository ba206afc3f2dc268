package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.etcd.io/bbolt"

	"github.com/phrazzld/lessonkit/internal/config"
	"github.com/phrazzld/lessonkit/internal/events"
	"github.com/phrazzld/lessonkit/internal/platform/bolt"
	"github.com/phrazzld/lessonkit/internal/platform/logger"
	"github.com/phrazzld/lessonkit/internal/platform/postgres"
	"github.com/phrazzld/lessonkit/internal/platform/sqlite"
	"github.com/phrazzld/lessonkit/internal/service"
)

// Data file names inside the storage directory
const (
	todosFile    = "todos.json"
	booksFile    = "books.json"
	studentsFile = "students.json"
	ledgerFile   = "ledger.db"
)

// app carries the loaded configuration and logger to every subcommand.
// fs is the filesystem the JSON stores and file helpers work on.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	fs     afero.Fs
}

func newRootCmd() *cobra.Command {
	return newRootCmdOn(afero.NewOsFs())
}

// newRootCmdOn builds the command tree with every file access going through fs.
func newRootCmdOn(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs}
	var (
		logLevel string
		dataDir  string
		dbPath   string
	)

	cmd := &cobra.Command{
		Use:          "lessonkit",
		Short:        "Lesson exercises: data stores, worker pools and text helpers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Server.LogLevel = logLevel
			}
			if dataDir != "" {
				cfg.Storage.DataDir = dataDir
			}
			if dbPath != "" {
				cfg.Database.Path = dbPath
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			l, err := logger.SetupWithWriter(cfg.Server, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, l
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); logs go to stderr")
	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the JSON and ledger files")
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite roster database path")

	cmd.AddCommand(
		primesCmd(a),
		wordCountCmd(a),
		todoCmd(a),
		rosterCmd(a),
		booksCmd(a),
		studentsCmd(a),
		bankCmd(a),
		passwordCmd(a),
		textCmd(a),
		datesCmd(a),
		filesCmd(a),
		migrateCmd(a),
	)

	return cmd
}

// dataPath places name inside the storage directory, creating the directory.
func (a *app) dataPath(name string) (string, error) {
	if err := a.fs.MkdirAll(a.cfg.Storage.DataDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return filepath.Join(a.cfg.Storage.DataDir, name), nil
}

// openRoster opens the configured roster database and returns a service and
// a close function.
func (a *app) openRoster(ctx context.Context) (service.RosterService, func(), error) {
	var svc service.RosterService
	switch a.cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := postgres.OpenAndMigrate(ctx, a.cfg.Database.URL, a.logger)
		if err != nil {
			return nil, nil, err
		}
		svc, err = service.NewRosterService(db, postgres.NewPostgresRosterStore(db, a.logger), nil, a.logger)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return svc, func() { _ = db.Close() }, nil

	default:
		db, err := sqlite.OpenAndMigrate(ctx, a.cfg.Database.Path, a.logger)
		if err != nil {
			return nil, nil, err
		}
		backupper := sqlite.NewBackupper(db, a.cfg.Database.Path, a.cfg.Database.BackupDir, a.logger, nil)
		svc, err = service.NewRosterService(db, sqlite.NewSQLiteRosterStore(db, a.logger), backupper, a.logger)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return svc, func() { _ = db.Close() }, nil
	}
}

// openLedger opens the bbolt ledger with its event log attached.
func (a *app) openLedger(ctx context.Context) (service.LedgerService, *bolt.EventLog, func(), error) {
	path, err := a.dataPath(ledgerFile)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := bolt.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	closeDB := func() { closeBolt(db, a.logger) }

	eventLog := bolt.NewEventLog(db, a.logger)
	emitter := events.NewInMemoryEventEmitter(a.logger)
	emitter.RegisterHandler(eventLog)

	svc, err := service.NewLedgerService(ctx, bolt.NewLedgerStore(db, a.logger), emitter, a.logger)
	if err != nil {
		closeDB()
		return nil, nil, nil, err
	}
	return svc, eventLog, closeDB, nil
}

func closeBolt(db *bbolt.DB, l *slog.Logger) {
	if err := db.Close(); err != nil {
		l.Error("failed to close ledger", slog.String("error", err.Error()))
	}
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// openInput opens path on the app filesystem, or returns stdin for "-" and
// the empty string.
func (a *app) openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return a.fs.Open(path)
}
