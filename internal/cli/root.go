// Package cli builds drip's cobra command tree.
package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/drip/internal/version"
	"github.com/arthur-debert/drip/pkg/config"
	"github.com/arthur-debert/drip/pkg/filesystem"
	"github.com/arthur-debert/drip/pkg/logging"
	"github.com/arthur-debert/drip/pkg/paths"
	"github.com/arthur-debert/drip/pkg/runner"
	"github.com/arthur-debert/drip/pkg/topics"
	"github.com/arthur-debert/drip/pkg/types"
)

// Env holds the process-level dependencies of every command
type Env struct {
	FS     types.FS
	Runner runner.Runner
	Out    io.Writer
	Err    io.Writer

	// LoadOptions is the base for config loading; --config is layered on top
	LoadOptions config.LoadOptions
}

// DefaultEnv uses the real filesystem, real processes and stdio
func DefaultEnv() Env {
	return Env{
		FS:     filesystem.NewOS(),
		Runner: runner.New(),
		Out:    os.Stdout,
		Err:    os.Stderr,
	}
}

type globalFlags struct {
	verbosity  int
	configFile string
}

// app is shared by the commands of one root
type app struct {
	env   Env
	flags globalFlags
}

// loadConfig reads the configuration layers with optional flag overrides
func (a *app) loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	opts := a.env.LoadOptions
	if a.flags.configFile != "" {
		opts.ConfigFile = a.flags.configFile
	}
	opts.Overrides = overrides
	return config.Load(opts)
}

// recipeDir resolves -d against the configured recipe.dir
func (a *app) recipeDir(flagValue string, cfg *config.Config) (string, error) {
	return paths.ResolveRecipeDir(flagValue, cfg.Recipe.Dir)
}

// NewRootCmd creates the root command
func NewRootCmd(env Env) *cobra.Command {
	a := &app{env: env}

	rootCmd := &cobra.Command{
		Use:     "drip",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithOutput(a.flags.verbosity, env.Err)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}
	rootCmd.SetOut(env.Out)
	rootCmd.SetErr(env.Err)

	rootCmd.PersistentFlags().CountVarP(&a.flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.flags.configFile, "config", "", MsgFlagConfig)

	help, err := topics.Load(topics.Builtin(), topics.Options{Renderer: topics.NewGlamourRenderer()})
	if err != nil {
		panic(err)
	}

	rootCmd.AddCommand(newBundleCmd(a))
	rootCmd.AddCommand(newDiffCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newTopicsCmd(help))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd(a))

	help.Install(rootCmd)
	return rootCmd
}

// Execute runs drip with the default environment
func Execute() error {
	return NewRootCmd(DefaultEnv()).Execute()
}
