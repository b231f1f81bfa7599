package logging

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerLevels(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{9, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		SetupLogger(tt.verbosity)
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)
	}
}

func TestGetLogger(t *testing.T) {
	logger := GetLogger("locator")
	// The component logger must be usable without further setup.
	logger.Debug().Msg("probe")
}

func TestSetupLogFileCreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state", "confsync", "confsync.log")

	f, err := setupLogFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.FileExists(t, path)
}
