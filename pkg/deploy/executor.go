// Package deploy drives installation of resolved configs: back up the
// destination, ensure its parent directory, copy the source over it.
// Entries are processed independently; one entry's failure never blocks
// the rest, and partial success is reported, not fatal.
package deploy

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/confsync/confsync/pkg/backup"
	"github.com/confsync/confsync/pkg/errors"
	"github.com/confsync/confsync/pkg/fsutil"
	"github.com/confsync/confsync/pkg/logging"
	"github.com/confsync/confsync/pkg/types"
)

// tmpSuffix names the staging path used to make replacement a single
// rename where the filesystem allows it.
const tmpSuffix = ".confsync-tmp"

// Executor installs resolved configs for one run.
type Executor struct {
	fsys   types.FS
	vault  *backup.Vault
	dryRun bool
	logger zerolog.Logger
}

// NewExecutor creates an executor writing through fsys and preserving
// prior destinations in vault. With dryRun set, outcomes are computed
// but the filesystem is never touched.
func NewExecutor(fsys types.FS, vault *backup.Vault, dryRun bool) *Executor {
	return &Executor{
		fsys:   fsys,
		vault:  vault,
		dryRun: dryRun,
		logger: logging.GetLogger("deploy"),
	}
}

// Deploy processes every resolved config and returns one outcome per
// entry, in input order.
func (e *Executor) Deploy(resolved []types.ResolvedConfig) []types.DeploymentOutcome {
	outcomes := make([]types.DeploymentOutcome, 0, len(resolved))
	for _, rc := range resolved {
		outcomes = append(outcomes, e.deployOne(rc))
	}
	return outcomes
}

func (e *Executor) deployOne(rc types.ResolvedConfig) types.DeploymentOutcome {
	outcome := types.DeploymentOutcome{
		LogicalName: rc.LogicalName,
		SourcePath:  rc.SourcePath,
		Destination: rc.Destination,
	}

	if !rc.Found() {
		e.logger.Info().Str("config", rc.LogicalName).Msg("Source not found, skipping")
		outcome.Status = types.StatusSourceMissing
		return outcome
	}

	if e.dryRun {
		e.logger.Info().
			Str("config", rc.LogicalName).
			Str("source", rc.SourcePath).
			Str("destination", rc.Destination).
			Msg("Would install (dry run)")
		outcome.Status = types.StatusInstalled
		return outcome
	}

	// Back up first. If the prior destination cannot be preserved the
	// entry fails without touching the destination: no silent data loss.
	record, err := e.vault.Backup(rc.Destination)
	if err != nil {
		e.logger.Error().Err(err).Str("config", rc.LogicalName).Msg("Backup failed, destination left untouched")
		outcome.Status = types.StatusWriteFailed
		outcome.ErrorDetail = err.Error()
		return outcome
	}
	outcome.Backup = &record

	if err := e.install(rc); err != nil {
		e.logger.Error().Err(err).Str("config", rc.LogicalName).Msg("Install failed")
		outcome.Status = types.StatusWriteFailed
		outcome.ErrorDetail = err.Error()
		return outcome
	}

	e.logger.Info().
		Str("config", rc.LogicalName).
		Str("source", rc.SourcePath).
		Str("destination", rc.Destination).
		Msg("Installed")
	outcome.Status = types.StatusInstalled
	return outcome
}

// install copies source over destination via a staging path so the
// final replacement is a single rename.
func (e *Executor) install(rc types.ResolvedConfig) error {
	parent := filepath.Dir(rc.Destination)
	if err := e.fsys.MkdirAll(parent, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrWriteFailed, "failed to create %s", parent)
	}

	tmp := rc.Destination + tmpSuffix
	defer func() { _ = e.fsys.RemoveAll(tmp) }()

	if err := fsutil.Copy(e.fsys, rc.SourcePath, tmp); err != nil {
		return errors.Wrapf(err, errors.ErrWriteFailed, "failed to stage %s", rc.LogicalName)
	}

	// A destination whose kind changed (file became directory or the
	// reverse) cannot be renamed over; clear it. Its content is already
	// in the vault.
	if info, err := e.fsys.Lstat(rc.Destination); err == nil {
		if info.IsDir() || rc.IsDirectory {
			if err := e.fsys.RemoveAll(rc.Destination); err != nil {
				return errors.Wrapf(err, errors.ErrWriteFailed, "failed to clear %s", rc.Destination)
			}
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrWriteFailed, "failed to inspect %s", rc.Destination)
	}

	if err := e.fsys.Rename(tmp, rc.Destination); err != nil {
		return errors.Wrapf(err, errors.ErrWriteFailed, "failed to replace %s", rc.Destination)
	}

	return nil
}
