package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/drip/pkg/errors"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG_CONFIG_HOME at an empty dir and clears DRIP_* variables
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, name := range []string{"DRIP_RECIPE_DIR", "DRIP_RECIPE_FILE", "DRIP_TOOLS_BREW", "DRIP_TOOLS_FETCH", "DRIP_TOOLS_SHELL", "DRIP_OUTPUT_FORMAT"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	xdg.Reload()
	return dir
}

func writeUserConfig(t *testing.T, xdgDir, content string) {
	t.Helper()
	dir := filepath.Join(xdgDir, "drip")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "", cfg.Recipe.Dir)
	assert.Equal(t, "recipe.kdl", cfg.Recipe.File)
	assert.Equal(t, "brew", cfg.Tools.Brew)
	assert.Equal(t, "curl", cfg.Tools.Fetch)
	assert.Equal(t, "fish", cfg.Tools.Shell)
	assert.Equal(t, "auto", cfg.Output.Format)
}

func TestLoad_Layering(t *testing.T) {
	t.Run("user file overrides defaults", func(t *testing.T) {
		xdgDir := isolate(t)
		writeUserConfig(t, xdgDir, `
[tools]
shell = "sh"

[recipe]
dir = "/from/file"
`)

		cfg, err := Load(LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, "sh", cfg.Tools.Shell)
		assert.Equal(t, "/from/file", cfg.Recipe.Dir)
		assert.Equal(t, "brew", cfg.Tools.Brew)
	})

	t.Run("environment overrides user file", func(t *testing.T) {
		xdgDir := isolate(t)
		writeUserConfig(t, xdgDir, `
[recipe]
dir = "/from/file"
`)
		t.Setenv("DRIP_RECIPE_DIR", "/from/env")
		t.Setenv("DRIP_TOOLS_SHELL", "bash")

		cfg, err := Load(LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, "/from/env", cfg.Recipe.Dir)
		assert.Equal(t, "bash", cfg.Tools.Shell)
	})

	t.Run("overrides win and empty overrides are skipped", func(t *testing.T) {
		isolate(t)
		t.Setenv("DRIP_RECIPE_DIR", "/from/env")

		cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{
			"recipe.dir":    "",
			"output.format": "json",
		}})
		require.NoError(t, err)
		assert.Equal(t, "/from/env", cfg.Recipe.Dir)
		assert.Equal(t, "json", cfg.Output.Format)
	})

	t.Run("explicit config file", func(t *testing.T) {
		isolate(t)
		path := filepath.Join(t.TempDir(), "custom.toml")
		require.NoError(t, os.WriteFile(path, []byte("[tools]\nbrew = \"/opt/homebrew/bin/brew\"\n"), 0644))

		cfg, err := Load(LoadOptions{ConfigFile: path})
		require.NoError(t, err)
		assert.Equal(t, "/opt/homebrew/bin/brew", cfg.Tools.Brew)
	})

	t.Run("missing explicit config file fails", func(t *testing.T) {
		isolate(t)

		_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.toml")})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("skipping user config still reads an explicit file", func(t *testing.T) {
		xdgDir := isolate(t)
		writeUserConfig(t, xdgDir, "[tools]\nfetch = \"wget\"\n")
		path := filepath.Join(t.TempDir(), "custom.toml")
		require.NoError(t, os.WriteFile(path, []byte("[tools]\nshell = \"zsh\"\n"), 0644))

		cfg, err := Load(LoadOptions{ConfigFile: path, SkipUserConfig: true})
		require.NoError(t, err)
		assert.Equal(t, "zsh", cfg.Tools.Shell)
		assert.Equal(t, "curl", cfg.Tools.Fetch)
	})

	t.Run("skipping user config ignores the XDG file", func(t *testing.T) {
		xdgDir := isolate(t)
		writeUserConfig(t, xdgDir, "[tools]\nfetch = \"wget\"\n")

		cfg, err := Load(LoadOptions{SkipUserConfig: true})
		require.NoError(t, err)
		assert.Equal(t, "curl", cfg.Tools.Fetch)
	})

	t.Run("missing explicit file fails when user config is skipped", func(t *testing.T) {
		isolate(t)

		_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.toml"), SkipUserConfig: true})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed user file fails", func(t *testing.T) {
		xdgDir := isolate(t)
		writeUserConfig(t, xdgDir, "[tools\nbrew = ")

		_, err := Load(LoadOptions{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "recipe.dir", envKey("DRIP_RECIPE_DIR"))
	assert.Equal(t, "tools.shell", envKey("DRIP_TOOLS_SHELL"))
	assert.Equal(t, "output.format", envKey("DRIP_OUTPUT_FORMAT"))
}

func TestMarshal(t *testing.T) {
	cfg := Default()
	cfg.Recipe.Dir = "/recipes"

	data, err := Marshal(cfg)
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, gotoml.Unmarshal(data, &decoded))
	assert.Equal(t, *cfg, decoded)
	assert.Contains(t, string(data), "[tools]")
}
