// Package diff compares a recipe's formulas with what Homebrew reports as
// installed leaves.
package diff

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/drip/pkg/logging"
	"github.com/arthur-debert/drip/pkg/types"
	"github.com/arthur-debert/drip/pkg/ui"
)

// Report holds both directions of the comparison, each sorted
type Report struct {
	// Missing are recorded in the recipe but not installed
	Missing []string `json:"missing" yaml:"missing"`
	// Extra are installed but not recorded in the recipe
	Extra []string `json:"extra" yaml:"extra"`
}

// InSync reports whether both directions are empty
func (r Report) InSync() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0
}

// Compute returns recipe∖installed and installed∖recipe. Only formulas take
// part; taps and casks are ignored.
func Compute(r types.Recipe, installed []string) Report {
	recorded := toSet(r.FormulaNames())
	local := toSet(installed)

	return Report{
		Missing: difference(recorded, local),
		Extra:   difference(local, recorded),
	}
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func difference(a, b map[string]struct{}) []string {
	out := []string{}
	for n := range a {
		if _, ok := b[n]; !ok {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Leaves lists the formulas installed on request
type Leaves interface {
	Leaves(ctx context.Context) ([]string, error)
}

// MsgInSync is written to the notice writer when neither direction has entries
const MsgInSync = "Recipe and installed formulas are in sync."

// Reporter queries installed leaves and prints the comparison
type Reporter struct {
	leaves Leaves
	out    io.Writer
	notice io.Writer
	format ui.Format
	logger zerolog.Logger
}

// NewReporter creates a Reporter writing to out in the given format
func NewReporter(leaves Leaves, out io.Writer, format ui.Format) *Reporter {
	return &Reporter{
		leaves: leaves,
		out:    out,
		format: format,
		logger: logging.GetLogger("diff"),
	}
}

// WithNotice sets where Print reports an in-sync result. The notice is kept
// off out so an empty text report stays empty.
func (r *Reporter) WithNotice(w io.Writer) *Reporter {
	r.notice = w
	return r
}

// Report queries the installed leaves and computes the comparison
func (r *Reporter) Report(ctx context.Context, recipe types.Recipe) (Report, error) {
	installed, err := r.leaves.Leaves(ctx)
	if err != nil {
		return Report{}, err
	}

	report := Compute(recipe, installed)
	r.logger.Debug().
		Int("installed", len(installed)).
		Int("missing", len(report.Missing)).
		Int("extra", len(report.Extra)).
		Msg("Computed diff")
	return report, nil
}

// Print queries, computes and writes the comparison
func (r *Reporter) Print(ctx context.Context, recipe types.Recipe) error {
	report, err := r.Report(ctx, recipe)
	if err != nil {
		return err
	}
	if err := Render(r.out, report, r.format); err != nil {
		return err
	}

	if r.notice != nil && report.InSync() && !isData(ui.Resolve(r.format, r.out)) {
		_, err = fmt.Fprintln(r.notice, MsgInSync)
	}
	return err
}

func isData(format ui.Format) bool {
	return format == ui.FormatJSON || format == ui.FormatYAML
}

// Render writes report in format. An empty direction prints nothing in the
// text formats.
func Render(w io.Writer, report Report, format ui.Format) error {
	format = ui.Resolve(format, w)
	if ok, err := ui.WriteData(w, format, report); ok {
		return err
	}

	styled := format == ui.FormatTerminal
	if err := section(w, report.Missing, "present in Recipe but not installed", "Missing", styled); err != nil {
		return err
	}
	return section(w, report.Extra, "installed locally but not recorded in Recipe", "Extra", styled)
}

func section(w io.Writer, names []string, what, style string, styled bool) error {
	if len(names) == 0 {
		return nil
	}

	header := fmt.Sprintf("%d formula(s) %s:", len(names), what)
	if styled {
		header = ui.Render("Header", header)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	for _, name := range names {
		line := "  - " + name
		if styled {
			line = ui.Render("Bullet", "-") + " " + ui.Render(style, name)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
