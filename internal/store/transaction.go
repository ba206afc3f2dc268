package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lessonkit/internal/platform/logger"
)

// TxFn runs inside a transaction. Returning an error rolls the transaction
// back; returning nil commits it.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// Transactor runs TxFns against one database.
type Transactor struct {
	db     *sql.DB
	opts   *sql.TxOptions
	logger *slog.Logger
}

// NewTransactor returns a Transactor for db. A logger carried by the context
// passed to Run takes precedence over logger.
func NewTransactor(db *sql.DB, logger *slog.Logger) *Transactor {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transactor{
		db:     db,
		logger: logger.With(slog.String("component", "transactor")),
	}
}

// WithOptions returns a copy of t that begins transactions with opts.
func (t *Transactor) WithOptions(opts *sql.TxOptions) *Transactor {
	clone := *t
	clone.opts = opts
	return &clone
}

// Run executes fn in a new transaction. Begin and commit failures wrap
// ErrTransactionFailed; an error from fn is returned as is once the
// rollback succeeds. A panic in fn rolls back and re-panics.
func (t *Transactor) Run(ctx context.Context, fn TxFn) error {
	log := logger.FromContextOrDefault(ctx, t.logger)

	tx, err := t.db.BeginTx(ctx, t.opts)
	if err != nil {
		log.Error("begin failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: begin: %w", ErrTransactionFailed, err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("rollback after panic failed",
					slog.String("error", rbErr.Error()),
					slog.Any("panic", p))
			} else {
				log.Error("rolled back after panic", slog.Any("panic", p))
			}
			// ALLOW-PANIC: Propagating caught panic from transaction
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error("rollback failed",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("error", err.Error()))
			return fmt.Errorf("%w: rollback: %v (cause: %w)", ErrTransactionFailed, rbErr, err)
		}
		log.Debug("rolled back", slog.String("error", err.Error()))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: commit: %w", ErrTransactionFailed, err)
	}
	log.Debug("committed")
	return nil
}

// RunInTransaction runs fn on db with the logger carried by ctx.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	return NewTransactor(db, nil).Run(ctx, fn)
}
