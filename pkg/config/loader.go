package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/makeover/pkg/errors"
	"github.com/arthur-debert/makeover/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix marks environment variables that override config keys,
	// e.g. MAKEOVER_SHELL_FLAG for shell_flag.
	EnvPrefix = "MAKEOVER_"
	// ProjectConfigName is looked up in the working directory.
	ProjectConfigName = ".makeover.toml"
)

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// UserConfigPath overrides the XDG user config file location.
	UserConfigPath string
	// ProjectDir is searched for ProjectConfigName, "." when empty.
	ProjectDir string
	// Overrides are applied last, typically from explicitly set flags.
	Overrides map[string]interface{}
}

// UserConfigPath returns the per-user config file location
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "makeover", "config.toml")
}

// Load builds the effective configuration. Layers, later wins:
// embedded defaults, user file, project file, environment, overrides.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User and project files, when present
	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath = UserConfigPath()
	}
	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	for _, path := range []string{userPath, filepath.Join(projectDir, ProjectConfigName)} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail(errors.DetailPath, path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	// 6. Post-process
	if cfg.InstallDir == "" {
		cfg.InstallDir = xdg.BinHome
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("buildfile", cfg.Buildfile).
		Str("shell", cfg.Shell).
		Str("color", cfg.Color).
		Msg("Configuration loaded")

	return &cfg, nil
}
