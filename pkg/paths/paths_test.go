package paths

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		sourceRoot string
		envSetup   map[string]string
		validate   func(t *testing.T, p *Paths)
	}{
		{
			name:       "explicit source root",
			sourceRoot: "/tmp/dotfiles",
			validate: func(t *testing.T, p *Paths) {
				assert.Equal(t, "/tmp/dotfiles", p.SourceRoot())
				assert.False(t, p.UsedFallback())
			},
		},
		{
			name: "from CONFSYNC_SOURCE env",
			envSetup: map[string]string{
				EnvSourceRoot: "/env/dotfiles",
			},
			validate: func(t *testing.T, p *Paths) {
				assert.Equal(t, "/env/dotfiles", p.SourceRoot())
			},
		},
		{
			name:       "expand tilde in explicit path",
			sourceRoot: "~/my-dotfiles",
			validate: func(t *testing.T, p *Paths) {
				homeDir, _ := os.UserHomeDir()
				assert.Equal(t, filepath.Join(homeDir, "my-dotfiles"), p.SourceRoot())
			},
		},
		{
			name:       "backup root override",
			sourceRoot: "/tmp/dotfiles",
			envSetup: map[string]string{
				EnvBackupRoot: "/var/backups",
			},
			validate: func(t *testing.T, p *Paths) {
				assert.Equal(t, "/var/backups", p.BackupRoot())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvSourceRoot, "")
			t.Setenv(EnvBackupRoot, "")
			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}

			p, err := New(tt.sourceRoot)
			require.NoError(t, err)
			tt.validate(t, p)
		})
	}
}

func TestBackupDirDeterministic(t *testing.T) {
	t.Setenv(EnvBackupRoot, "/home/user")

	p, err := New("/tmp/dotfiles")
	require.NoError(t, err)

	at := time.Date(2024, 3, 9, 14, 30, 5, 999, time.UTC)
	want := "/home/user/.confsync-backup-20240309-143005"

	// Sub-second differences must not change the directory name.
	assert.Equal(t, want, p.BackupDir(at))
	assert.Equal(t, want, p.BackupDir(at.Add(500*time.Millisecond)))
}

func TestExpandHome(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", homeDir},
		{"~/dotfiles", filepath.Join(homeDir, "dotfiles")},
		{"~other/dotfiles", "~other/dotfiles"},
		{"/abs/path", "/abs/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandHome(tt.in), "input %q", tt.in)
	}
}

func TestSourceConfigFile(t *testing.T) {
	p, err := New("/tmp/dotfiles")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dotfiles/.confsync.toml", p.SourceConfigFile())
}
