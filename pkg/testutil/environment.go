package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/drip/pkg/filesystem"
	"github.com/arthur-debert/drip/pkg/paths"
	"github.com/arthur-debert/drip/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a recipe directory, a home directory, a
// filesystem and a recording runner. HOME, the XDG directories and
// $DRIP_RECIPE_DIR point into it for the duration of the test.
type TestEnvironment struct {
	RecipeDir string
	HomeDir   string

	FS     types.FS
	Runner *MockRunner

	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		t:      t,
		Type:   envType,
		Runner: NewMockRunner(),
	}

	switch envType {
	case EnvMemoryOnly:
		env.RecipeDir = "/virtual/recipes"
		env.HomeDir = "/virtual/home"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		tempDir := t.TempDir()
		env.RecipeDir = filepath.Join(tempDir, "recipes")
		env.HomeDir = filepath.Join(tempDir, "home")
		env.FS = filesystem.NewOS()
	}

	for _, dir := range []string{env.RecipeDir, env.HomeDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	// Logs and config always live on the real filesystem
	t.Cleanup(xdg.Reload)
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(paths.EnvRecipeDir, env.RecipeDir)
	xdg.Reload()

	return env
}

// FileTree represents a directory structure for testing. Values are file
// contents (string) or nested FileTrees.
type FileTree map[string]interface{}

// WithFileTree creates a file tree under the recipe directory
func (env *TestEnvironment) WithFileTree(tree FileTree) *TestEnvironment {
	env.t.Helper()
	env.createFileTree(env.RecipeDir, tree)
	return env
}

// WithRecipe writes recipe.kdl into the recipe directory
func (env *TestEnvironment) WithRecipe(content string) *TestEnvironment {
	env.t.Helper()
	env.WriteFile(paths.RecipeFile(env.RecipeDir, ""), content)
	return env
}

// WriteFile creates path with content, creating parent directories
func (env *TestEnvironment) WriteFile(path, content string) {
	env.t.Helper()

	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	f, err := env.FS.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		env.t.Fatalf("Failed to open %s: %v", path, err)
	}
	if _, err := f.Write([]byte(content)); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		env.t.Fatalf("Failed to close %s: %v", path, err)
	}
}

// ReadFile returns the content of path, failing the test when it is missing
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(path)
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// Home joins elem onto the home directory
func (env *TestEnvironment) Home(elem ...string) string {
	return filepath.Join(append([]string{env.HomeDir}, elem...)...)
}

func (env *TestEnvironment) createFileTree(basePath string, tree FileTree) {
	env.t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			env.WriteFile(fullPath, v)
		case FileTree:
			if err := env.FS.MkdirAll(fullPath, 0755); err != nil {
				env.t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			env.createFileTree(fullPath, v)
		default:
			env.t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
