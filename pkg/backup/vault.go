// Package backup preserves pre-existing destination content before the
// executor overwrites it. Each engine run owns exactly one backup
// directory, named from the run's start instant at whole-second
// resolution; every item backed up during the run lands in that same
// directory.
package backup

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/confsync/confsync/pkg/errors"
	"github.com/confsync/confsync/pkg/fsutil"
	"github.com/confsync/confsync/pkg/logging"
	"github.com/confsync/confsync/pkg/types"
)

// Vault writes backups for one engine run.
type Vault struct {
	fsys      types.FS
	dir       string
	timestamp time.Time
	created   bool
	logger    zerolog.Logger
}

// NewVault creates a vault writing into dir, the run's backup directory.
// The directory itself is created lazily on the first backup, so a run
// that preserves nothing leaves no empty directory behind.
func NewVault(fsys types.FS, dir string, at time.Time) *Vault {
	return &Vault{
		fsys:      fsys,
		dir:       dir,
		timestamp: at,
		logger:    logging.GetLogger("backup"),
	}
}

// Dir returns the run's backup directory.
func (v *Vault) Dir() string {
	return v.dir
}

// Backup preserves the current content of destination inside the run's
// backup directory, keeping its base name. A destination that does not
// exist yields Created=false and no error: a first-time install has
// nothing to preserve. Any failure to verify or copy the destination
// escalates, because the caller must never overwrite content whose
// backup is not known to be written.
func (v *Vault) Backup(destination string) (types.BackupRecord, error) {
	record := types.BackupRecord{
		OriginalPath: destination,
		Timestamp:    v.timestamp,
	}

	if _, err := v.fsys.Lstat(destination); err != nil {
		if os.IsNotExist(err) {
			v.logger.Debug().Str("path", destination).Msg("Nothing to back up")
			return record, nil
		}
		return record, errors.Wrapf(err, errors.ErrBackupFailed, "cannot verify %s before overwrite", destination)
	}

	if err := v.ensureDir(); err != nil {
		return record, err
	}

	target := filepath.Join(v.dir, filepath.Base(destination))
	if err := fsutil.Copy(v.fsys, destination, target); err != nil {
		return record, errors.Wrapf(err, errors.ErrBackupFailed, "failed to back up %s", destination)
	}

	record.BackupDir = v.dir
	record.Created = true
	v.logger.Info().
		Str("path", destination).
		Str("backupDir", v.dir).
		Msg("Backed up existing destination")

	return record, nil
}

// ensureDir creates the run's backup directory once. MkdirAll is
// idempotent, so a future per-entry parallel executor can share the
// directory without coordination beyond this guard.
func (v *Vault) ensureDir() error {
	if v.created {
		return nil
	}
	if err := v.fsys.MkdirAll(v.dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrBackupFailed, "failed to create backup directory %s", v.dir)
	}
	v.created = true
	return nil
}
