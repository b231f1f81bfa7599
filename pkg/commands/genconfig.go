package commands

import (
	"bytes"
	"os"

	"github.com/confsync/confsync/pkg/catalog"
	"github.com/confsync/confsync/pkg/errors"
	"github.com/confsync/confsync/pkg/logging"
	"github.com/confsync/confsync/pkg/paths"
)

// genConfigHeader opens the generated file. The [settings] block mirrors
// the built-in defaults so users see every knob.
const genConfigHeader = `# confsync configuration.
# Place this file at the root of your source tree as .confsync.toml,
# or under $XDG_CONFIG_HOME/confsync/config.toml for user-wide settings.
#
# [[config]] entries replace built-in catalog entries with the same name
# and are appended otherwise. Candidates are probed in order; the first
# one that exists wins.

[settings]
output = "text"
confirm = true

`

// GenConfigOptions holds options for the gen-config command.
type GenConfigOptions struct {
	// SourceRoot locates the tree whose .confsync.toml is written in
	// Write mode.
	SourceRoot string
	// Write stores the generated config in the source tree instead of
	// only returning it.
	Write bool
}

// GenConfigResult is what GenConfig produced.
type GenConfigResult struct {
	Content     string
	FileWritten string
}

// GenConfig renders the default configuration, including the built-in
// catalog, as a starting point for customization. In Write mode an
// existing config file is left alone.
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands")

	var buf bytes.Buffer
	buf.WriteString(genConfigHeader)
	if err := catalog.EncodeTOML(&buf, catalog.Default()); err != nil {
		return nil, err
	}

	result := &GenConfigResult{Content: buf.String()}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	p, err := paths.New(opts.SourceRoot)
	if err != nil {
		return nil, err
	}

	target := p.SourceConfigFile()
	if _, err := os.Stat(target); err == nil {
		logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
		return result, nil
	}

	if err := os.WriteFile(target, []byte(result.Content), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileCreate, "failed to write config to %s", target)
	}

	logger.Info().Str("path", target).Msg("Written config file")
	result.FileWritten = target
	return result, nil
}
