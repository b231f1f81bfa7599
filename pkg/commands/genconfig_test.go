package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confsync/confsync/pkg/config"
)

func TestGenConfigContent(t *testing.T) {
	setupEnv(t)

	result, err := GenConfig(GenConfigOptions{})
	require.NoError(t, err)

	assert.Empty(t, result.FileWritten)
	assert.Contains(t, result.Content, "[settings]")
	assert.Contains(t, result.Content, "[[config]]")
	assert.Contains(t, result.Content, "zshrc")
	assert.Contains(t, result.Content, "nvim")
}

func TestGenConfigRoundTrips(t *testing.T) {
	env := setupEnv(t)

	result, err := GenConfig(GenConfigOptions{})
	require.NoError(t, err)

	// The generated file must load back as valid configuration.
	target := filepath.Join(env.Source, ".confsync.toml")
	require.NoError(t, os.WriteFile(target, []byte(result.Content), 0644))

	cfg, err := config.Load(target)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Settings.Output)
	assert.NotEmpty(t, cfg.Catalog)
}

func TestGenConfigWrite(t *testing.T) {
	env := setupEnv(t)

	result, err := GenConfig(GenConfigOptions{SourceRoot: env.Source, Write: true})
	require.NoError(t, err)

	expected := filepath.Join(env.Source, ".confsync.toml")
	assert.Equal(t, expected, result.FileWritten)
	assert.FileExists(t, expected)
}

func TestGenConfigWriteLeavesExistingFileAlone(t *testing.T) {
	env := setupEnv(t)
	env.writeSource(t, ".confsync.toml", "# mine\n")

	result, err := GenConfig(GenConfigOptions{SourceRoot: env.Source, Write: true})
	require.NoError(t, err)

	assert.Empty(t, result.FileWritten)
	data, err := os.ReadFile(filepath.Join(env.Source, ".confsync.toml"))
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))
}
