package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/makeover/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolated returns options that ignore any config on the host machine.
func isolated(t *testing.T) LoadOptions {
	t.Helper()
	dir := t.TempDir()
	return LoadOptions{
		UserConfigPath: filepath.Join(dir, "user", "config.toml"),
		ProjectDir:     filepath.Join(dir, "project"),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(isolated(t))
	require.NoError(t, err)

	assert.Equal(t, "buildfile", cfg.Buildfile)
	assert.Equal(t, "/bin/sh", cfg.Shell)
	assert.Equal(t, "-c", cfg.ShellFlag)
	assert.False(t, cfg.Echo)
	assert.Equal(t, "General", cfg.DefaultGroup)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, xdg.BinHome, cfg.InstallDir)
}

func TestLoadLayering(t *testing.T) {
	t.Run("user_file", func(t *testing.T) {
		opts := isolated(t)
		writeFile(t, opts.UserConfigPath, `shell = "/bin/bash"`)

		cfg, err := Load(opts)
		require.NoError(t, err)
		assert.Equal(t, "/bin/bash", cfg.Shell)
	})

	t.Run("project_file_beats_user_file", func(t *testing.T) {
		opts := isolated(t)
		writeFile(t, opts.UserConfigPath, "shell = \"/bin/bash\"\necho = true\n")
		writeFile(t, filepath.Join(opts.ProjectDir, ProjectConfigName), `shell = "/bin/zsh"`)

		cfg, err := Load(opts)
		require.NoError(t, err)
		assert.Equal(t, "/bin/zsh", cfg.Shell)
		assert.True(t, cfg.Echo, "keys absent from the project file keep the user value")
	})

	t.Run("env_beats_files", func(t *testing.T) {
		opts := isolated(t)
		writeFile(t, filepath.Join(opts.ProjectDir, ProjectConfigName), `shell_flag = "-ec"`)
		t.Setenv("MAKEOVER_SHELL_FLAG", "-euc")
		t.Setenv("MAKEOVER_ECHO", "true")

		cfg, err := Load(opts)
		require.NoError(t, err)
		assert.Equal(t, "-euc", cfg.ShellFlag)
		assert.True(t, cfg.Echo)
	})

	t.Run("overrides_beat_env", func(t *testing.T) {
		opts := isolated(t)
		t.Setenv("MAKEOVER_BUILDFILE", "from-env")
		opts.Overrides = map[string]interface{}{"buildfile": "from-flag"}

		cfg, err := Load(opts)
		require.NoError(t, err)
		assert.Equal(t, "from-flag", cfg.Buildfile)
	})

	t.Run("explicit_install_dir", func(t *testing.T) {
		opts := isolated(t)
		opts.Overrides = map[string]interface{}{"install_dir": "/opt/bin"}

		cfg, err := Load(opts)
		require.NoError(t, err)
		assert.Equal(t, "/opt/bin", cfg.InstallDir)
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("malformed_file", func(t *testing.T) {
		opts := isolated(t)
		writeFile(t, opts.UserConfigPath, "shell = ")

		_, err := Load(opts)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
		assert.Equal(t, opts.UserConfigPath, errors.GetErrorDetails(err)[errors.DetailPath])
	})

	t.Run("invalid_color", func(t *testing.T) {
		opts := isolated(t)
		opts.Overrides = map[string]interface{}{"color": "sometimes"}

		_, err := Load(opts)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("empty_shell", func(t *testing.T) {
		opts := isolated(t)
		opts.Overrides = map[string]interface{}{"shell": ""}

		_, err := Load(opts)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})
}

func TestConfigTOML(t *testing.T) {
	cfg := &Config{
		Buildfile:    "Buildfile",
		Shell:        "/bin/sh",
		ShellFlag:    "-c",
		Echo:         true,
		DefaultGroup: "Misc",
		InstallDir:   "/usr/local/bin",
		Color:        "never",
	}

	data, err := cfg.TOML()
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, *cfg, decoded)
	assert.Contains(t, string(data), "shell_flag = ")
}

func TestDefaultsContent(t *testing.T) {
	assert.Contains(t, DefaultsContent(), `buildfile = "buildfile"`)
}
