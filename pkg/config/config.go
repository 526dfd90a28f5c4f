package config

import (
	"github.com/arthur-debert/makeover/pkg/errors"
	"github.com/arthur-debert/makeover/pkg/ui/output/styles"
	toml "github.com/pelletier/go-toml/v2"
)

// Config is the effective configuration of a makeover run.
type Config struct {
	// Buildfile is the path of the build file to read.
	Buildfile string `koanf:"buildfile" toml:"buildfile"`
	// Shell and ShellFlag form the command prefix for every recipe line.
	Shell     string `koanf:"shell" toml:"shell"`
	ShellFlag string `koanf:"shell_flag" toml:"shell_flag"`
	// Echo prints each resolved command before it runs.
	Echo bool `koanf:"echo" toml:"echo"`
	// DefaultGroup is used for targets declared before any group marker.
	DefaultGroup string `koanf:"default_group" toml:"default_group"`
	// InstallDir is where --self-install copies the binary.
	InstallDir string `koanf:"install_dir" toml:"install_dir"`
	// Color is one of auto, always or never.
	Color string `koanf:"color" toml:"color"`
}

// Validate checks the configuration for values the engine cannot use.
func (c *Config) Validate() error {
	if c.Buildfile == "" {
		return errors.New(errors.ErrConfigValid, "buildfile must not be empty")
	}
	if c.Shell == "" {
		return errors.New(errors.ErrConfigValid, "shell must not be empty")
	}
	if c.DefaultGroup == "" {
		return errors.New(errors.ErrConfigValid, "default_group must not be empty")
	}
	if _, err := styles.ParseColorMode(c.Color); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid color setting")
	}
	return nil
}

// ColorMode returns the parsed color setting, auto when invalid.
func (c *Config) ColorMode() styles.ColorMode {
	mode, _ := styles.ParseColorMode(c.Color)
	return mode
}

// TOML renders the configuration in the same format the config files use.
func (c *Config) TOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return data, nil
}
