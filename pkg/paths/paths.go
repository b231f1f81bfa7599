// Package paths provides centralized path handling for confsync:
// source-root resolution, home expansion, and the per-run backup
// directory location.
package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/confsync/confsync/pkg/errors"
)

// Environment variable names
const (
	// EnvSourceRoot is the primary environment variable for the config
	// source tree location
	EnvSourceRoot = "CONFSYNC_SOURCE"

	// EnvBackupRoot overrides where per-run backup directories are created
	EnvBackupRoot = "CONFSYNC_BACKUP_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// ConfigFileName is the per-source-tree configuration file
	ConfigFileName = ".confsync.toml"

	// backupDirPrefix names the per-run backup directories created under
	// the backup root
	backupDirPrefix = ".confsync-backup-"

	// BackupTimestampLayout names backup directories at whole-second
	// resolution; all items backed up in one run share one directory.
	BackupTimestampLayout = "20060102-150405"
)

// Paths provides centralized path management for a single run.
type Paths struct {
	sourceRoot   string
	backupRoot   string
	usedFallback bool
}

// New creates a new Paths instance with the given source root. If
// sourceRoot is empty, it is determined from CONFSYNC_SOURCE, the
// enclosing git repository, or the current working directory in that
// order.
func New(sourceRoot string) (*Paths, error) {
	p := &Paths{}

	if sourceRoot == "" {
		root, usedFallback, err := findSourceRoot()
		if err != nil {
			return nil, err
		}
		p.sourceRoot = root
		p.usedFallback = usedFallback
	} else {
		p.sourceRoot = ExpandHome(sourceRoot)
	}

	absRoot, err := filepath.Abs(p.sourceRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for source root")
	}
	p.sourceRoot = absRoot

	if backupRoot := os.Getenv(EnvBackupRoot); backupRoot != "" {
		p.backupRoot = ExpandHome(backupRoot)
	} else {
		home, err := GetHomeDirectory()
		if err != nil {
			return nil, err
		}
		p.backupRoot = home
	}

	return p, nil
}

// SourceRoot returns the root directory of the config source tree
func (p *Paths) SourceRoot() string {
	return p.sourceRoot
}

// UsedFallback returns true if the current working directory was used as
// the source root fallback
func (p *Paths) UsedFallback() bool {
	return p.usedFallback
}

// BackupRoot returns the directory under which per-run backup
// directories are created. Backups live under the user's home so they
// sit next to the files they preserve.
func (p *Paths) BackupRoot() string {
	return p.backupRoot
}

// BackupDir returns the backup directory for a run starting at the given
// instant. The name is deterministic at whole-second resolution so every
// item backed up during one run lands in the same directory.
func (p *Paths) BackupDir(at time.Time) string {
	return filepath.Join(p.backupRoot, backupDirPrefix+at.Format(BackupTimestampLayout))
}

// SourceConfigFile returns the path of the optional per-tree config file
func (p *Paths) SourceConfigFile() string {
	return filepath.Join(p.sourceRoot, ConfigFileName)
}

// UserConfigFile returns the path of the user-level config file under
// the XDG config directory
func UserConfigFile() string {
	return filepath.Join(xdg.ConfigHome, "confsync", "config.toml")
}

// findSourceRoot determines the source root using the following priority:
// 1. CONFSYNC_SOURCE environment variable (if set)
// 2. Git repository root (found via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback)
func findSourceRoot() (string, bool, error) {
	if root := os.Getenv(EnvSourceRoot); root != "" {
		return ExpandHome(root), false, nil
	}

	gitRoot, err := findGitRoot()
	if err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")

	output, err := cmd.Output()
	if err != nil {
		// Not in a git repo or git not installed
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}

	return gitRoot, nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// GetHomeDirectory returns the user's home directory with proper error
// handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}
