// Package config handles configuration management for drip.
//
// Configuration is layered with koanf, later layers overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/drip/config.toml or --config
//  3. DRIP_* environment variables (DRIP_RECIPE_DIR sets recipe.dir)
//  4. command-line flag overrides
//
// The result is unmarshalled into Config. None of it reaches the installer
// or the postinstall interpreter except the tool binary names.
package config
