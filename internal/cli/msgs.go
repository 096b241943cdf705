package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort     = "Install a Homebrew recipe and keep it in sync"
	MsgBundleShort   = "Install everything in the recipe"
	MsgDiffShort     = "Compare the recipe with installed formulas"
	MsgConfigShort   = "Print the effective configuration"
	MsgTopicsShort   = "Read help topics"
	MsgVersionShort  = "Print version information"
	MsgVersionLong   = "Print detailed version information including commit hash and build date"
	MsgManShort      = "Generate man pages"
	MsgCompleteShort = "Generate shell completion script"

	MsgRootLong = `drip installs the taps, formulas and casks listed in a recipe.kdl file,
runs the postinstall steps attached to each formula, and reports how the
installed formulas drift from the recipe.`

	MsgBundleLong = `Bundle installs every tap, then every formula followed by its postinstall
steps, then every cask. The first failure stops the run; nothing is rolled back.`

	MsgDiffLong = `Diff lists formulas recorded in the recipe but not installed, and formulas
installed on request (brew leaves -r) that the recipe does not record.`

	// Status messages
	MsgRecipeInstalled = "Recipe installed: %d step(s)\n"
	MsgRecipeEmpty     = "Recipe is empty, nothing to install."
	MsgManWritten      = "Man pages written to %s\n"

	// Version output
	MsgVersionFormat = "drip version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Config file (default is $XDG_CONFIG_HOME/drip/config.toml)"
	MsgFlagRecipeDir = "Directory containing recipe.kdl (default $DRIP_RECIPE_DIR)"
	MsgFlagFormat    = "Output format: auto, term, text, json or yaml"
	MsgFlagDefaults  = "Print the built-in defaults instead of the effective configuration"
)
