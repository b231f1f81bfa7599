// Package pkgmgr is the package manager adapter: given a tool name, it
// installs it with the host's native package manager. The deployment
// engine never calls this package; only the CLI's --ensure-tools path
// does, and it treats every failure here as reportable, never fatal.
package pkgmgr

import (
	"context"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/confsync/confsync/pkg/errors"
	"github.com/confsync/confsync/pkg/logging"
	"github.com/confsync/confsync/pkg/types"
)

// Manager installs tools with a native package manager.
type Manager interface {
	Name() types.PackageManager

	// IsInstalled reports whether the tool's binary is on PATH. This is
	// the only signal the rest of the system consumes.
	IsInstalled(tool string) bool

	// InstallArgs returns the full argv that Install would execute.
	InstallArgs(tool string) []string

	// Install runs the native install command for the tool.
	Install(ctx context.Context, tool string) error
}

type commandTable struct {
	install   []string
	needsSudo bool
}

// tables maps each package manager to its install command. Tools are
// appended as the final argument.
var tables = map[types.PackageManager]commandTable{
	types.PMBrew:   {install: []string{"brew", "install"}},
	types.PMApt:    {install: []string{"apt-get", "install", "-y"}, needsSudo: true},
	types.PMYum:    {install: []string{"yum", "install", "-y"}, needsSudo: true},
	types.PMDnf:    {install: []string{"dnf", "install", "-y"}, needsSudo: true},
	types.PMPacman: {install: []string{"pacman", "-S", "--noconfirm"}, needsSudo: true},
	types.PMApk:    {install: []string{"apk", "add"}, needsSudo: true},
	types.PMZypper: {install: []string{"zypper", "install", "-y"}, needsSudo: true},
}

// For returns the manager for the classified environment. Unknown
// package managers get a noop manager whose Install always fails with
// UNSUPPORTED, so callers degrade instead of branching on platform.
func For(env types.EnvironmentDescriptor) Manager {
	table, ok := tables[env.PackageManager]
	if !ok {
		return noopManager{}
	}
	return &nativeManager{
		name:     env.PackageManager,
		table:    table,
		sudo:     table.needsSudo && !env.IsElevatedUser,
		lookPath: exec.LookPath,
		run:      runCommand,
		logger:   logging.GetLogger("pkgmgr"),
	}
}

type nativeManager struct {
	name     types.PackageManager
	table    commandTable
	sudo     bool
	lookPath func(string) (string, error)
	run      func(ctx context.Context, argv []string) error
	logger   zerolog.Logger
}

func (m *nativeManager) Name() types.PackageManager {
	return m.name
}

func (m *nativeManager) IsInstalled(tool string) bool {
	_, err := m.lookPath(tool)
	return err == nil
}

func (m *nativeManager) InstallArgs(tool string) []string {
	argv := make([]string, 0, len(m.table.install)+2)
	if m.sudo {
		argv = append(argv, "sudo")
	}
	argv = append(argv, m.table.install...)
	return append(argv, tool)
}

func (m *nativeManager) Install(ctx context.Context, tool string) error {
	argv := m.InstallArgs(tool)
	m.logger.Info().Strs("argv", argv).Str("tool", tool).Msg("Installing tool")

	if err := m.run(ctx, argv); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to install %s with %s", tool, m.name)
	}
	return nil
}

func runCommand(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

type noopManager struct{}

func (noopManager) Name() types.PackageManager { return types.PMUnknown }

func (noopManager) IsInstalled(tool string) bool {
	_, err := exec.LookPath(tool)
	return err == nil
}

func (noopManager) InstallArgs(tool string) []string { return nil }

func (noopManager) Install(ctx context.Context, tool string) error {
	return errors.Newf(errors.ErrUnsupported, "no known package manager to install %s", tool)
}
