// Package commands implements the high-level operations behind the
// confsync CLI: deploy, status, and environment inspection. Each
// command takes an options struct, runs the resolution pipeline, and
// returns a Report; rendering and exit codes belong to the caller.
package commands

import (
	"time"

	"github.com/confsync/confsync/pkg/backup"
	"github.com/confsync/confsync/pkg/catalog"
	"github.com/confsync/confsync/pkg/config"
	"github.com/confsync/confsync/pkg/deploy"
	"github.com/confsync/confsync/pkg/envinfo"
	"github.com/confsync/confsync/pkg/errors"
	"github.com/confsync/confsync/pkg/filesystem"
	"github.com/confsync/confsync/pkg/locator"
	"github.com/confsync/confsync/pkg/logging"
	"github.com/confsync/confsync/pkg/paths"
	"github.com/confsync/confsync/pkg/report"
	"github.com/confsync/confsync/pkg/types"
)

// DeployOptions defines the options for the Deploy command.
type DeployOptions struct {
	// SourceRoot is the path to the root of the config source tree. If
	// empty, it is resolved from CONFSYNC_SOURCE, the enclosing git
	// repository, or the current working directory.
	SourceRoot string
	// DryRun specifies whether to report planned work without touching
	// the filesystem.
	DryRun bool
	// FS overrides the filesystem. Nil means the real OS filesystem.
	FS types.FS
	// Now overrides the run timestamp used to name the backup
	// directory. Zero means time.Now.
	Now time.Time
}

// Deploy resolves every catalog entry against the source tree and
// installs the matches, backing up existing destinations first. A
// per-entry failure is recorded in the report, not returned as an
// error; the returned error is reserved for preconditions that stop
// the whole run, such as a missing source root.
func Deploy(opts DeployOptions) (*types.Report, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "Deploy").Bool("dryRun", opts.DryRun).Msg("Executing command")
	defer logging.LogOperationStart(log, "deploy")()

	pipe, err := newPipeline(opts.SourceRoot, opts.FS)
	if err != nil {
		return nil, err
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	vault := backup.NewVault(pipe.fsys, pipe.paths.BackupDir(now), now)
	executor := deploy.NewExecutor(pipe.fsys, vault, opts.DryRun)
	outcomes := executor.Deploy(pipe.resolved)

	result := report.Summarize("deploy", outcomes, pipe.env, opts.DryRun)

	log.Info().
		Str("command", "Deploy").
		Int("installed", result.Installed).
		Int("missing", result.Missing).
		Int("failed", result.Failed).
		Msg("Command finished")
	return result, nil
}

// StatusOptions defines the options for the Status command.
type StatusOptions struct {
	// SourceRoot is the path to the root of the config source tree.
	SourceRoot string
	// FS overrides the filesystem. Nil means the real OS filesystem.
	FS types.FS
}

// Status runs classification and location only: it reports which
// entries would be installed and which have no source, without writing
// anything.
func Status(opts StatusOptions) (*types.Report, error) {
	log := logging.GetLogger("commands")
	log.Debug().Str("command", "Status").Msg("Executing command")

	pipe, err := newPipeline(opts.SourceRoot, opts.FS)
	if err != nil {
		return nil, err
	}

	executor := deploy.NewExecutor(pipe.fsys, nil, true)
	outcomes := executor.Deploy(pipe.resolved)

	result := report.Summarize("status", outcomes, pipe.env, true)

	log.Info().Str("command", "Status").Int("found", result.Installed).Msg("Command finished")
	return result, nil
}

// Environment returns the environment classification on its own.
func Environment() types.EnvironmentDescriptor {
	return envinfo.Classify()
}

// RuntimeSettings loads the merged scalar settings for presentation
// decisions (output format, confirmation). Load failures fall back to
// the built-in defaults rather than aborting, since these settings only
// shape rendering.
func RuntimeSettings(sourceRoot string) config.Settings {
	sourceConfig := ""
	if p, err := paths.New(sourceRoot); err == nil {
		sourceConfig = p.SourceConfigFile()
	}

	cfg, err := config.Load(sourceConfig)
	if err != nil {
		logger := logging.GetLogger("commands")
		logger.Warn().Err(err).Msg("Config load failed, using defaults")
		return config.Settings{Output: "text", Confirm: true}
	}
	return cfg.Settings
}

// pipeline carries the state shared by Deploy and Status: the resolved
// paths, the merged catalog located against the source tree, and the
// environment descriptor.
type pipeline struct {
	fsys     types.FS
	paths    *paths.Paths
	env      types.EnvironmentDescriptor
	resolved []types.ResolvedConfig
}

func newPipeline(sourceRoot string, fsys types.FS) (*pipeline, error) {
	log := logging.GetLogger("commands")

	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	p, err := paths.New(sourceRoot)
	if err != nil {
		return nil, err
	}

	// Hard precondition: without a source tree there is nothing to
	// resolve, so fail before touching any destination.
	info, err := fsys.Stat(p.SourceRoot())
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrSourceRootMissing,
			"source root does not exist: %s", p.SourceRoot())
	}

	env := envinfo.Classify()
	log.Debug().
		Str("osFamily", string(env.OSFamily)).
		Str("packageManager", string(env.PackageManager)).
		Str("sourceRoot", p.SourceRoot()).
		Msg("resolution pipeline starting")

	cfg, err := config.Load(p.SourceConfigFile())
	if err != nil {
		return nil, err
	}

	entries := catalog.Merge(catalog.Default(), cfg.Catalog)
	if err := catalog.Validate(entries); err != nil {
		return nil, err
	}
	entries = catalog.ExpandDestinations(entries)

	resolved := locator.Locate(fsys, p.SourceRoot(), entries)

	return &pipeline{
		fsys:     fsys,
		paths:    p,
		env:      env,
		resolved: resolved,
	}, nil
}
