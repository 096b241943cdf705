package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/drip/internal/version"
	"github.com/arthur-debert/drip/pkg/brew"
	"github.com/arthur-debert/drip/pkg/bundle"
	"github.com/arthur-debert/drip/pkg/config"
	"github.com/arthur-debert/drip/pkg/diff"
	"github.com/arthur-debert/drip/pkg/errors"
	"github.com/arthur-debert/drip/pkg/postinstall"
	"github.com/arthur-debert/drip/pkg/recipe"
	"github.com/arthur-debert/drip/pkg/topics"
	"github.com/arthur-debert/drip/pkg/types"
	"github.com/arthur-debert/drip/pkg/ui"
)

// loadRecipe resolves the recipe directory and reads the recipe in it
func (a *app) loadRecipe(cfg *config.Config, dirFlag string) (string, types.Recipe, error) {
	dir, err := a.recipeDir(dirFlag, cfg)
	if err != nil {
		return "", types.Recipe{}, err
	}

	log.Info().Str("recipeDir", dir).Msg("Using recipe directory")
	r, err := recipe.Load(a.env.FS, dir, cfg.Recipe.File)
	if err != nil {
		return "", types.Recipe{}, err
	}
	return dir, r, nil
}

func newBundleCmd(a *app) *cobra.Command {
	var recipeDir string

	cmd := &cobra.Command{
		Use:     "bundle",
		Aliases: []string{"b"},
		Short:   MsgBundleShort,
		Long:    MsgBundleLong,
		Example: `  # Install the recipe in $DRIP_RECIPE_DIR
  drip bundle

  # Install the recipe in another directory
  drip b -d ~/dotfiles`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(nil)
			if err != nil {
				return err
			}
			dir, r, err := a.loadRecipe(cfg, recipeDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if r.IsEmpty() {
				_, _ = fmt.Fprintln(out, MsgRecipeEmpty)
				return nil
			}

			format, err := ui.ParseFormat(cfg.Output.Format)
			if err != nil {
				return err
			}

			interp := postinstall.New(postinstall.Options{
				FS:     a.env.FS,
				Runner: a.env.Runner,
				Fetch:  cfg.Tools.Fetch,
				Shell:  cfg.Tools.Shell,
			})
			steps := len(bundle.Plan(r))
			installer := bundle.New(brew.New(a.env.Runner, cfg.Tools.Brew), interp).
				WithReporter(ui.NewProgress(out, format, steps))

			if err := installer.Install(cmd.Context(), dir, r); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, MsgRecipeInstalled, steps)
			return nil
		},
	}

	cmd.Flags().StringVarP(&recipeDir, "recipe-dir", "d", "", MsgFlagRecipeDir)
	return cmd
}

func newDiffCmd(a *app) *cobra.Command {
	var (
		recipeDir string
		format    string
	)

	cmd := &cobra.Command{
		Use:     "diff",
		Aliases: []string{"d"},
		Short:   MsgDiffShort,
		Long:    MsgDiffLong,
		Example: `  # Show drift between the recipe and brew leaves
  drip diff

  # Machine-readable output
  drip d --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(map[string]interface{}{"output.format": format})
			if err != nil {
				return err
			}
			_, r, err := a.loadRecipe(cfg, recipeDir)
			if err != nil {
				return err
			}

			outFormat, err := ui.ParseFormat(cfg.Output.Format)
			if err != nil {
				return err
			}

			reporter := diff.NewReporter(brew.New(a.env.Runner, cfg.Tools.Brew), cmd.OutOrStdout(), outFormat).
				WithNotice(cmd.ErrOrStderr())
			return reporter.Print(cmd.Context(), r)
		},
	}

	cmd.Flags().StringVarP(&recipeDir, "recipe-dir", "d", "", MsgFlagRecipeDir)
	cmd.Flags().StringVar(&format, "format", "", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := io.WriteString(cmd.OutOrStdout(), config.GetDefaultsContent())
				return err
			}
			cfg, err := a.loadConfig(nil)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newTopicsCmd(help *topics.Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "topics [name]",
		Short: MsgTopicsShort,
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return help.List(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				help.PrintList(cmd.OutOrStdout(), cmd.Root().Name())
				return nil
			}
			rendered, err := help.Render(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompleteShort,
		Long: `To load completions:

Bash:
  $ source <(drip completion bash)

Zsh:
  $ drip completion zsh > "${fpath[1]}/_drip"

Fish:
  $ drip completion fish > ~/.config/fish/completions/drip.fish

PowerShell:
  PS> drip completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:    "man <dir>",
		Short:  MsgManShort,
		Args:   cobra.ExactArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := a.env.FS.MkdirAll(dir, 0755); err != nil {
				return errors.CreateDirFailed(dir, err.Error())
			}

			header := doc.GenManHeader{
				Section: "1",
				Source:  "drip " + version.Version,
				Manual:  "drip manual",
			}
			if err := writeManPages(a.env.FS, cmd.Root(), header, dir); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten, dir)
			return nil
		},
	}
}

// writeManPages writes one page per available command, named like
// doc.GenManTree names them ("drip-bundle.1").
func writeManPages(fsys types.FS, cmd *cobra.Command, header doc.GenManHeader, dir string) error {
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() || c.IsAdditionalHelpTopicCommand() {
			continue
		}
		if err := writeManPages(fsys, c, header, dir); err != nil {
			return err
		}
	}

	path := filepath.Join(dir, strings.ReplaceAll(cmd.CommandPath(), " ", "-")+"."+header.Section)
	f, err := fsys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.ReadWriteFailed(path, err.Error())
	}

	// GenMan fills the title in place, so each page gets its own copy
	page := header
	if err := doc.GenMan(cmd, &page, f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, errors.ErrInternal, "failed to generate man page %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.ReadWriteFailed(path, err.Error())
	}
	return nil
}
