package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/drip/pkg/bundle"
)

// Progress prints one line per installation step. It implements
// bundle.Reporter.
type Progress struct {
	out    io.Writer
	styled bool
	total  int
	index  int
}

// NewProgress creates a reporter for a run of total steps. Terminal output is
// prefixed with pterm labels; every other format gets plain lines.
func NewProgress(out io.Writer, format Format, total int) *Progress {
	return &Progress{
		out:    out,
		styled: Resolve(format, out) == FormatTerminal,
		total:  total,
	}
}

func (p *Progress) label(step bundle.Step) string {
	return fmt.Sprintf("[%d/%d] %s", p.index, p.total, step)
}

// Started implements bundle.Reporter
func (p *Progress) Started(step bundle.Step) {
	p.index++
	if p.styled {
		_, _ = fmt.Fprint(p.out, pterm.Info.Sprintln(p.label(step)))
		return
	}
	_, _ = fmt.Fprintln(p.out, p.label(step))
}

// Finished implements bundle.Reporter
func (p *Progress) Finished(step bundle.Step, err error) {
	switch {
	case err != nil && p.styled:
		_, _ = fmt.Fprint(p.out, pterm.Error.Sprintln(p.label(step)))
	case err != nil:
		_, _ = fmt.Fprintf(p.out, "failed: %s\n", p.label(step))
	case p.styled && step.Kind != bundle.StepPostinstall:
		_, _ = fmt.Fprint(p.out, pterm.Success.Sprintln(p.label(step)))
	}
}

var _ bundle.Reporter = (*Progress)(nil)
