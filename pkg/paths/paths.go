package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/drip/pkg/errors"
)

// Environment variable names
const (
	// EnvRecipeDir names the recipe directory when no flag is given
	EnvRecipeDir = "DRIP_RECIPE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// DripDirName is the directory name for drip-specific files
	DripDirName = "drip"

	// ConfigFileName is the user configuration file under the XDG config dir
	ConfigFileName = "config.toml"

	// DefaultRecipeFile is the recipe file read from the recipe directory
	DefaultRecipeFile = "recipe.kdl"
)

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv(EnvHome)
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrInternal, "unable to determine home directory: neither os.UserHomeDir() nor HOME environment variable are available")
}

// ExpandHome expands a leading ~ to the user's home directory.
// Only "~" and "~/..." are expanded; "~user" forms are returned as-is.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "cannot expand %s", path)
	}

	if path == "~" {
		return homeDir, nil
	}
	return filepath.Join(homeDir, path[2:]), nil
}

// ResolveRecipeDir picks the recipe directory: the explicit flag value wins,
// then the configured value (which carries $DRIP_RECIPE_DIR).
// The result has ~ expanded and is made absolute.
func ResolveRecipeDir(flagValue, configured string) (string, error) {
	dir := flagValue
	if dir == "" {
		dir = configured
	}
	if dir == "" {
		return "", errors.Newf(errors.ErrInvalidInput, "$%s is not set", EnvRecipeDir)
	}

	expanded, err := ExpandHome(dir)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid recipe directory %s", dir)
	}
	return abs, nil
}

// RecipeFile joins the recipe directory and file name, defaulting the name.
func RecipeFile(recipeDir, fileName string) string {
	if fileName == "" {
		fileName = DefaultRecipeFile
	}
	return filepath.Join(recipeDir, fileName)
}

// ResolveAgainst returns path unchanged when absolute, otherwise joined to base.
func ResolveAgainst(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// ConfigDir returns $XDG_CONFIG_HOME/drip
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, DripDirName)
}

// ConfigFile returns the default user configuration file path
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}
