package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/drip/pkg/errors"
	"github.com/arthur-debert/drip/pkg/logging"
	"github.com/arthur-debert/drip/pkg/paths"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of environment variables read into the config
const EnvPrefix = "DRIP_"

// LoadOptions controls which layers Load reads
type LoadOptions struct {
	// ConfigFile replaces the default user config path. It must exist.
	ConfigFile string

	// Overrides are applied last, keyed by dotted path ("tools.shell").
	// Empty string values are skipped so unset flags don't clobber lower layers.
	Overrides map[string]interface{}

	// SkipUserConfig ignores $XDG_CONFIG_HOME/drip/config.toml. ConfigFile is
	// still read when set.
	SkipUserConfig bool
	SkipEnv        bool
}

// Load builds the effective configuration.
func Load(opts LoadOptions) (*Config, error) {
	k, err := NewKoanf(opts)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to decode configuration")
	}
	return &cfg, nil
}

// NewKoanf loads every configuration layer into a koanf instance
func NewKoanf(opts LoadOptions) (*koanf.Koanf, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file. An explicit file is always read; SkipUserConfig
	// only skips the default XDG location.
	path, explicit := opts.ConfigFile, opts.ConfigFile != ""
	if !explicit && !opts.SkipUserConfig {
		path = paths.ConfigFile()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
			}
			logger.Debug().Str("path", path).Msg("Loaded user config")
		} else if explicit {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", path)
		}
	}

	// 3. Environment
	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
		}
	}

	// 4. Flag overrides
	overrides := make(map[string]interface{})
	for key, value := range opts.Overrides {
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		overrides[key] = value
	}
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	return k, nil
}

// envKey maps DRIP_RECIPE_DIR to recipe.dir and DRIP_TOOLS_SHELL to tools.shell.
// Only the first underscore separates section from key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// Marshal renders the configuration as TOML
func Marshal(cfg *Config) ([]byte, error) {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return data, nil
}
