package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/phrazzld/lessonkit/internal/store"
)

// Backup file timestamps are local time.
const backupTimeLayout = "20060102_150405"

// Backupper copies a file-backed database into a backup directory.
type Backupper struct {
	db        store.DBTX
	dbPath    string
	backupDir string
	logger    *slog.Logger
	now       func() time.Time
}

// NewBackupper creates a Backupper for the database opened from dbPath.
// A nil clock uses time.Now.
func NewBackupper(db store.DBTX, dbPath, backupDir string, logger *slog.Logger, now func() time.Time) *Backupper {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Backupper{
		db:        db,
		dbPath:    dbPath,
		backupDir: backupDir,
		logger:    logger.With(slog.String("component", "roster_backup")),
		now:       now,
	}
}

var _ store.Backupper = (*Backupper)(nil)

// Backup writes roster_backup_YYYYMMDD_HHMMSS.db with VACUUM INTO and returns
// its path. In-memory databases are skipped with an empty path.
func (b *Backupper) Backup(ctx context.Context) (string, error) {
	if IsMemory(b.dbPath) {
		b.logger.Debug("skipping backup of in-memory database")
		return "", nil
	}

	if err := os.MkdirAll(b.backupDir, 0o750); err != nil {
		return "", store.NewStoreError("database", "backup", "cannot create "+b.backupDir, fmt.Errorf("%w: %w", store.ErrBackupFailed, err))
	}

	path := filepath.Join(b.backupDir, "roster_backup_"+b.now().Format(backupTimeLayout)+".db")
	if _, err := os.Stat(path); err == nil {
		// VACUUM INTO refuses to overwrite; two backups in the same second replace the first.
		if err := os.Remove(path); err != nil {
			return "", store.NewStoreError("database", "backup", "cannot replace "+path, fmt.Errorf("%w: %w", store.ErrBackupFailed, err))
		}
	}

	if _, err := b.db.ExecContext(ctx, `VACUUM INTO ?`, path); err != nil {
		b.logger.Error("database backup failed", slog.String("error", err.Error()))
		return "", store.NewStoreError("database", "backup", "VACUUM INTO "+path, fmt.Errorf("%w: %w", store.ErrBackupFailed, err))
	}

	b.logger.Info("database backed up", slog.String("path", path))
	return path, nil
}
