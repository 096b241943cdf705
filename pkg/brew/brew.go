// Package brew drives the Homebrew CLI.
//
// Each method maps to exactly one brew invocation:
//
//	AddTap          brew tap <name>
//	InstallFormula  brew install <name>
//	InstallCask     brew install --cask <name>
//	Leaves          brew leaves -r
//
// A brew process that cannot be started yields a COMMAND_FAILED error; one
// that runs and exits non-zero yields TAP_FAILED, FORMULA_FAILED or
// CASK_FAILED carrying brew's stderr. Nothing is checked before invoking
// brew: reinstalling an installed formula is left to brew itself.
package brew

import (
	"bufio"
	"context"
	"strings"

	"github.com/arthur-debert/drip/pkg/errors"
	"github.com/arthur-debert/drip/pkg/logging"
	"github.com/arthur-debert/drip/pkg/runner"
	"github.com/rs/zerolog"
)

// DefaultBinary is the brew executable looked up on PATH
const DefaultBinary = "brew"

// Client runs brew commands through a runner.Runner
type Client struct {
	runner runner.Runner
	binary string
	logger zerolog.Logger
}

// New creates a Client. An empty binary means DefaultBinary.
func New(r runner.Runner, binary string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{
		runner: r,
		binary: binary,
		logger: logging.GetLogger("brew"),
	}
}

// AddTap runs `brew tap <name>`
func (c *Client) AddTap(ctx context.Context, name string) error {
	res, err := c.run(ctx, name, "tap")
	if err != nil {
		return err
	}
	if !res.Success() {
		return errors.TapFailed(name, res.StderrText())
	}
	return nil
}

// InstallFormula runs `brew install <name>`
func (c *Client) InstallFormula(ctx context.Context, name string) error {
	res, err := c.run(ctx, name, "install")
	if err != nil {
		return err
	}
	if !res.Success() {
		return errors.FormulaFailed(name, res.StderrText())
	}
	return nil
}

// InstallCask runs `brew install --cask <name>`
func (c *Client) InstallCask(ctx context.Context, name string) error {
	res, err := c.run(ctx, name, "install", "--cask")
	if err != nil {
		return err
	}
	if !res.Success() {
		return errors.CaskFailed(name, res.StderrText())
	}
	return nil
}

// Leaves returns the installed formulas that were installed on request and
// that no other installed formula depends on, one per line of
// `brew leaves -r`. Only a spawn failure is an error: an unsuccessful exit is
// logged and whatever was printed is used.
func (c *Client) Leaves(ctx context.Context) ([]string, error) {
	res, err := c.run(ctx, "", "leaves", "-r")
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		c.logger.Warn().
			Int("exitCode", res.ExitCode).
			Str("stderr", res.StderrText()).
			Msg("brew leaves exited unsuccessfully")
	}

	return parseLines(res.StdoutText()), nil
}

// run invokes brew with a subcommand and an optional operand. A spawn
// failure is reported with the command minus its operand, e.g.
// "brew install --cask".
func (c *Client) run(ctx context.Context, operand string, args ...string) (runner.Result, error) {
	argv := args
	if operand != "" {
		argv = append(append([]string(nil), args...), operand)
	}

	res, err := c.runner.Run(ctx, c.binary, argv...)
	if err != nil {
		desc := strings.Join(append([]string{c.binary}, args...), " ")
		return runner.Result{}, errors.CommandFailed(desc, err.Error())
	}
	return res, nil
}

// parseLines splits newline-delimited names, skipping blank lines
func parseLines(output string) []string {
	var names []string
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
