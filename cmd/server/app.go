package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.etcd.io/bbolt"

	"github.com/phrazzld/lessonkit/internal/config"
	"github.com/phrazzld/lessonkit/internal/events"
	"github.com/phrazzld/lessonkit/internal/platform/bolt"
	"github.com/phrazzld/lessonkit/internal/platform/jsonfile"
	"github.com/phrazzld/lessonkit/internal/service"
	"github.com/phrazzld/lessonkit/internal/task"
)

// Data file names inside the storage directory
const (
	todosFile    = "todos.json"
	booksFile    = "books.json"
	studentsFile = "students.json"
	ledgerFile   = "ledger.db"
)

// application holds the shared dependencies and closes them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	roster *rosterDatabase
	ledger *bbolt.DB

	// Services
	todoService    *service.TodoService
	blogService    *service.BlogService
	ledgerService  service.LedgerService
	rosterService  service.RosterService
	libraryService *service.LibraryService
	studentService *service.StudentService

	wordCount task.WordCountConfig

	eventEmitter *events.InMemoryEventEmitter
}

// newApplication opens every store under the configured locations and wires
// the services. On error anything already opened is closed again.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *application, err error) {
	app := &application{
		config: cfg,
		logger: logger,
		wordCount: task.WordCountConfig{
			Workers:   cfg.Workers.Count,
			QueueSize: cfg.Workers.QueueSize,
		},
	}
	defer func() {
		if err != nil {
			app.cleanup()
		}
	}()

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	dataFs := afero.NewBasePathFs(afero.NewOsFs(), cfg.Storage.DataDir)

	app.roster, err = setupRosterDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up roster database: %w", err)
	}
	app.rosterService, err = service.NewRosterService(app.roster.db, app.roster.store, app.roster.backupper, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create roster service: %w", err)
	}
	seeded, err := app.rosterService.Seed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to seed roster: %w", err)
	}
	if seeded > 0 {
		logger.Info("roster seeded", slog.Int("members", seeded))
	}

	app.ledger, err = bolt.Open(filepath.Join(cfg.Storage.DataDir, ledgerFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(bolt.NewEventLog(app.ledger, logger))
	app.ledgerService, err = service.NewLedgerService(ctx, bolt.NewLedgerStore(app.ledger, logger), app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger service: %w", err)
	}

	app.todoService, err = service.NewTodoService(ctx, jsonfile.NewTodoStore(dataFs, todosFile, logger), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo service: %w", err)
	}
	app.libraryService, err = service.NewLibraryService(jsonfile.NewBookStore(dataFs, booksFile, logger), nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create library service: %w", err)
	}
	app.studentService, err = service.NewStudentService(jsonfile.NewStudentStore(dataFs, studentsFile, logger), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create student service: %w", err)
	}
	app.blogService = service.NewBlogService()

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup closes the databases.
func (app *application) cleanup() {
	if app.ledger != nil {
		if err := app.ledger.Close(); err != nil {
			app.logger.Error("error closing ledger", slog.String("error", err.Error()))
		}
	}
	if app.roster != nil && app.roster.db != nil {
		if err := app.roster.db.Close(); err != nil {
			app.logger.Error("error closing roster database", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
