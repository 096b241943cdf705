package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/drip/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tilde only", "~", home},
		{"tilde slash", "~/.config/fish", filepath.Join(home, ".config", "fish")},
		{"absolute untouched", "/etc/hosts", "/etc/hosts"},
		{"relative untouched", "config.fish", "config.fish"},
		{"tilde user untouched", "~bob/x", "~bob/x"},
		{"tilde in middle untouched", "a/~/b", "a/~/b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandHome(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetHomeDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := GetHomeDirectory()
	require.NoError(t, err)
	assert.Equal(t, home, got)
}

func TestResolveRecipeDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Run("flag wins", func(t *testing.T) {
		got, err := ResolveRecipeDir("/flag/dir", "/config/dir")
		require.NoError(t, err)
		assert.Equal(t, "/flag/dir", got)
	})

	t.Run("falls back to configured", func(t *testing.T) {
		got, err := ResolveRecipeDir("", "~/recipes")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "recipes"), got)
	})

	t.Run("relative made absolute", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)

		got, err := ResolveRecipeDir("recipes", "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(wd, "recipes"), got)
	})

	t.Run("nothing set", func(t *testing.T) {
		_, err := ResolveRecipeDir("", "")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		assert.Contains(t, err.Error(), "$DRIP_RECIPE_DIR is not set")
	})
}

func TestRecipeFile(t *testing.T) {
	assert.Equal(t, filepath.Join("/r", "recipe.kdl"), RecipeFile("/r", ""))
	assert.Equal(t, filepath.Join("/r", "other.kdl"), RecipeFile("/r", "other.kdl"))
}

func TestResolveAgainst(t *testing.T) {
	assert.Equal(t, "/abs/file", ResolveAgainst("/base", "/abs/file"))
	assert.Equal(t, filepath.Join("/base", "rel", "file"), ResolveAgainst("/base", "rel/file"))
}

func TestConfigFile(t *testing.T) {
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	xdg.Reload()

	assert.Equal(t, filepath.FromSlash("/xdg/config/drip/config.toml"), ConfigFile())
}
