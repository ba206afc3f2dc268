package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/phrazzld/lessonkit/internal/config"
	"github.com/phrazzld/lessonkit/internal/platform/migrate"
	"github.com/phrazzld/lessonkit/internal/platform/postgres"
	"github.com/phrazzld/lessonkit/internal/platform/sqlite"
)

func migrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <up|down|reset|status|version>",
		Short:     "Run roster database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{migrate.CommandUp, migrate.CommandDown, migrate.CommandReset, migrate.CommandStatus, migrate.CommandVersion},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				db  *sql.DB
				src migrate.Source
				err error
			)
			switch a.cfg.Database.Driver {
			case config.DriverPostgres:
				src = postgres.Migrations
				db, err = postgres.Open(ctx, a.cfg.Database.URL, a.logger)
			case config.DriverSQLite:
				src = sqlite.Migrations
				db, err = sqlite.Open(ctx, a.cfg.Database.Path, a.logger)
			default:
				return fmt.Errorf("unsupported database driver %q", a.cfg.Database.Driver)
			}
			if err != nil {
				return err
			}
			defer func() {
				if cerr := db.Close(); cerr != nil {
					a.logger.Error("failed to close database", slog.String("error", cerr.Error()))
				}
			}()

			if err := migrate.Run(ctx, db, src, args[0], a.logger); err != nil {
				return err
			}
			if args[0] == migrate.CommandVersion {
				v, err := migrate.CurrentVersion(ctx, db, src)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d\n", v)
			}
			return nil
		},
	}
}
