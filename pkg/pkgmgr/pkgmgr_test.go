package pkgmgr

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confsync/confsync/pkg/errors"
	"github.com/confsync/confsync/pkg/logging"
	"github.com/confsync/confsync/pkg/types"
)

func TestForKnownManagers(t *testing.T) {
	tests := []struct {
		pm       types.PackageManager
		elevated bool
		wantArgv []string
	}{
		{types.PMBrew, false, []string{"brew", "install", "tmux"}},
		{types.PMApt, false, []string{"sudo", "apt-get", "install", "-y", "tmux"}},
		{types.PMApt, true, []string{"apt-get", "install", "-y", "tmux"}},
		{types.PMDnf, false, []string{"sudo", "dnf", "install", "-y", "tmux"}},
		{types.PMYum, true, []string{"yum", "install", "-y", "tmux"}},
		{types.PMPacman, false, []string{"sudo", "pacman", "-S", "--noconfirm", "tmux"}},
		{types.PMApk, true, []string{"apk", "add", "tmux"}},
		{types.PMZypper, false, []string{"sudo", "zypper", "install", "-y", "tmux"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s elevated=%v", tt.pm, tt.elevated), func(t *testing.T) {
			m := For(types.EnvironmentDescriptor{
				PackageManager: tt.pm,
				IsElevatedUser: tt.elevated,
			})
			assert.Equal(t, tt.pm, m.Name())
			assert.Equal(t, tt.wantArgv, m.InstallArgs("tmux"))
		})
	}
}

func TestForUnknownManagerIsNoop(t *testing.T) {
	m := For(types.EnvironmentDescriptor{PackageManager: types.PMUnknown})

	assert.Equal(t, types.PMUnknown, m.Name())
	err := m.Install(context.Background(), "tmux")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupported))
}

func TestIsInstalled(t *testing.T) {
	m := &nativeManager{
		name:  types.PMApt,
		table: tables[types.PMApt],
		lookPath: func(name string) (string, error) {
			if name == "tmux" {
				return "/usr/bin/tmux", nil
			}
			return "", fmt.Errorf("not found")
		},
		logger: logging.GetLogger("pkgmgr"),
	}

	assert.True(t, m.IsInstalled("tmux"))
	assert.False(t, m.IsInstalled("starship"))
}

func TestInstallRunsConstructedCommand(t *testing.T) {
	var got []string
	m := &nativeManager{
		name:  types.PMApt,
		table: tables[types.PMApt],
		sudo:  true,
		run: func(ctx context.Context, argv []string) error {
			got = argv
			return nil
		},
		logger: logging.GetLogger("pkgmgr"),
	}

	require.NoError(t, m.Install(context.Background(), "zsh"))
	assert.Equal(t, []string{"sudo", "apt-get", "install", "-y", "zsh"}, got)
}

func TestInstallWrapsFailure(t *testing.T) {
	m := &nativeManager{
		name:  types.PMBrew,
		table: tables[types.PMBrew],
		run: func(ctx context.Context, argv []string) error {
			return fmt.Errorf("exit status 1")
		},
		logger: logging.GetLogger("pkgmgr"),
	}

	err := m.Install(context.Background(), "zsh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to install zsh")
}
