// Package paths provides centralized path handling for drip.
//
// It handles:
//
//   - Home directory lookup and ~ expansion for recipe paths
//   - Recipe directory resolution (flag, then configuration/environment)
//   - XDG locations for the user configuration file
//
// # Environment Variables
//
//   - DRIP_RECIPE_DIR: directory holding recipe.kdl when no --recipe-dir is given
//   - HOME: fallback when the platform home lookup fails
//
// # Usage
//
//	dir, err := paths.ResolveRecipeDir(flagValue, cfg.Recipe.Dir)
//	recipeFile := paths.RecipeFile(dir, cfg.Recipe.File)
package paths
