// Package config loads confsync's layered runtime configuration:
// embedded defaults, the user config file, the source tree's
// .confsync.toml, and CONFSYNC_* environment variables, each layer
// overriding the previous one. The catalog override table rides along
// in the same files as [[config]] entries.
package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/confsync/confsync/pkg/errors"
	"github.com/confsync/confsync/pkg/logging"
	"github.com/confsync/confsync/pkg/paths"
	"github.com/confsync/confsync/pkg/types"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// envPrefix is the prefix of environment variables that override
// configuration file settings.
const envPrefix = "CONFSYNC_"

// envKeys maps recognized environment variables to their settings keys.
// Variables outside this map are ignored rather than guessed at, since
// setting names contain underscores themselves.
var envKeys = map[string]string{
	"CONFSYNC_OUTPUT":      "settings.output",
	"CONFSYNC_CONFIRM":     "settings.confirm",
	"CONFSYNC_SOURCE":      "settings.source_root",
	"CONFSYNC_BACKUP_ROOT": "settings.backup_root",
}

// Settings holds scalar runtime options.
type Settings struct {
	SourceRoot string `toml:"source_root"`
	BackupRoot string `toml:"backup_root"`
	Output     string `toml:"output"`
	Confirm    bool   `toml:"confirm"`
}

// Config is the fully merged runtime configuration.
type Config struct {
	Settings Settings             `toml:"settings"`
	Catalog  []types.CatalogEntry `toml:"config"`
}

// rawBytesProvider implements a koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load builds the merged configuration. sourceConfigFile is the path of
// the source tree's .confsync.toml; pass "" to skip that layer (the
// source root may not be known yet when the CLI loads config).
func Load(sourceConfigFile string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load embedded defaults")
	}

	// 2. User config, then source tree config
	for _, path := range []string{paths.UserConfigFile(), sourceConfigFile} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment overrides
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return envKeys[strings.ToUpper(s)]
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "toml"}); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	return &cfg, nil
}
