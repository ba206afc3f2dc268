package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/phrazzld/lessonkit/internal/store"
	"github.com/spf13/afero"
)

// BackupSuffix is appended to a document's path for the copy of its
// previous contents.
const BackupSuffix = ".backup"

// document is one JSON file on fs holding a collection of entity.
// Failures are reported as *store.StoreError.
type document struct {
	fs     afero.Fs
	path   string
	entity string
	backup bool
}

func (d document) fail(op, msg string, err error) error {
	return store.NewStoreError(d.entity, op, msg+" "+d.path, err)
}

// read decodes the document into v. It reports false when the file does not exist.
func (d document) read(v any) (bool, error) {
	data, err := afero.ReadFile(d.fs, d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, d.fail("load", "cannot read", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, d.fail("load", "cannot decode", fmt.Errorf("%w: %v", store.ErrCorruptData, err))
	}
	return true, nil
}

// write encodes v with two-space indentation and replaces the document atomically.
func (d document) write(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return d.fail("save", "cannot encode", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(d.path); dir != "." {
		if err := d.fs.MkdirAll(dir, 0o755); err != nil {
			return d.fail("save", "cannot create directory for", err)
		}
	}

	if d.backup {
		if err := d.copyPrevious(); err != nil {
			return err
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := d.path + ".tmp"
	if err := afero.WriteFile(d.fs, tmp, data, 0o600); err != nil {
		return d.fail("save", "cannot write", err)
	}
	if err := d.fs.Rename(tmp, d.path); err != nil {
		_ = d.fs.Remove(tmp)
		return d.fail("save", "cannot replace", err)
	}
	return nil
}

func (d document) copyPrevious() error {
	prev, err := afero.ReadFile(d.fs, d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return d.fail("backup", "cannot read", fmt.Errorf("%w: %w", store.ErrBackupFailed, err))
	}
	if err := afero.WriteFile(d.fs, d.path+BackupSuffix, prev, 0o600); err != nil {
		return d.fail("backup", "cannot copy", fmt.Errorf("%w: %w", store.ErrBackupFailed, err))
	}
	return nil
}
