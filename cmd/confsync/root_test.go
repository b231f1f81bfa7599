package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the CLI with the given args against a fresh root
// command and returns its combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// sandbox redirects HOME, the XDG directories, and the backup root into
// temp dirs and returns a populated source tree.
func sandbox(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	t.Setenv("CONFSYNC_BACKUP_ROOT", t.TempDir())

	source := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(source, "zshrc"), []byte("export A=1\n"), 0644))
	return source
}

func TestVersionCmd(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "confsync version")
}

func TestStatusCmd(t *testing.T) {
	source := sandbox(t)

	out, err := runCommand(t, "status", "--source", source)
	require.NoError(t, err)
	assert.Contains(t, out, "zshrc")
	assert.Contains(t, out, "1 installed")
}

func TestStatusCmdMissingSourceRoot(t *testing.T) {
	sandbox(t)

	_, err := runCommand(t, "status", "--source", filepath.Join(t.TempDir(), "gone"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source root does not exist")
}

func TestDeployCmdDryRun(t *testing.T) {
	source := sandbox(t)

	out, err := runCommand(t, "deploy", "--dry-run", "--source", source)
	require.NoError(t, err)
	assert.Contains(t, out, "dry run")
	assert.Contains(t, out, "zshrc")
}

func TestDeployCmdWritesDestination(t *testing.T) {
	source := sandbox(t)

	// Non-tty stdin skips the prompt, but pass --yes to make the
	// intent explicit.
	_, err := runCommand(t, "deploy", "--yes", "--source", source)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	data, err := os.ReadFile(filepath.Join(home, ".zshrc"))
	require.NoError(t, err)
	assert.Equal(t, "export A=1\n", string(data))
}

func TestDeployCmdJSONOutput(t *testing.T) {
	source := sandbox(t)

	out, err := runCommand(t, "deploy", "--dry-run", "--source", source, "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"command": "deploy"`)
	assert.Contains(t, out, `"dryRun": true`)
}

func TestDeployCmdRejectsUnknownFormat(t *testing.T) {
	source := sandbox(t)

	_, err := runCommand(t, "deploy", "--dry-run", "--source", source, "--output", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestEnvCmd(t *testing.T) {
	sandbox(t)

	out, err := runCommand(t, "env")
	require.NoError(t, err)
	assert.Contains(t, out, "os family:")
	assert.Contains(t, out, "package manager:")
}

func TestEnvCmdJSON(t *testing.T) {
	sandbox(t)

	out, err := runCommand(t, "env", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"osFamily"`)
}

func TestGenConfigCmd(t *testing.T) {
	sandbox(t)

	out, err := runCommand(t, "gen-config")
	require.NoError(t, err)
	assert.Contains(t, out, "[settings]")
	assert.Contains(t, out, "[[config]]")
}

func TestDocsCmdListsTopics(t *testing.T) {
	out, err := runCommand(t, "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "overview")
	assert.Contains(t, out, "catalog")
}

func TestDocsCmdRendersTopic(t *testing.T) {
	out, err := runCommand(t, "docs", "overview")
	require.NoError(t, err)
	assert.Contains(t, out, "confsync")
}

func TestDocsCmdUnknownTopic(t *testing.T) {
	_, err := runCommand(t, "docs", "no-such-topic")
	require.Error(t, err)
}

func TestRootCmdWithoutSubcommand(t *testing.T) {
	_, err := runCommand(t)
	require.Error(t, err)
}
