// Package main implements the lessonkit HTTP server, which exposes the todo
// list, blog, bank ledger, roster, books and students over a JSON API
// together with the stateless text and number helpers.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/lessonkit/internal/config"
	"github.com/phrazzld/lessonkit/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, reset, status, version) and exit")
	flag.Parse()

	cfg, l, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *migrateCmd != "" {
		if err := runMigrations(ctx, cfg, *migrateCmd, l); err != nil {
			l.Error("migration failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		l.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := app.Run(ctx); err != nil {
		l.Error("server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("data_dir", cfg.Storage.DataDir))
	if cfg.Database.URL != "" {
		l.Debug("database configuration", slog.Bool("url_present", true))
	}
	return cfg, l, nil
}
