package bundle

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/drip/pkg/errors"
	"github.com/arthur-debert/drip/pkg/logging"
	"github.com/arthur-debert/drip/pkg/types"
)

// StepKind is the kind of work a Step performs
type StepKind string

const (
	StepTap         StepKind = "tap"
	StepFormula     StepKind = "formula"
	StepPostinstall StepKind = "postinstall"
	StepCask        StepKind = "cask"
)

// Step is one unit of an installation
type Step struct {
	Kind StepKind
	// Name is the tap, formula or cask name. For postinstall steps it is the
	// step's own description.
	Name string
	// Formula owns a postinstall step
	Formula     string
	Postinstall types.Postinstall
}

func (s Step) String() string {
	if s.Kind == StepPostinstall {
		return fmt.Sprintf("%s: %s", s.Formula, s.Name)
	}
	return fmt.Sprintf("%s %s", s.Kind, s.Name)
}

// Brew is the package manager surface the installer needs
type Brew interface {
	AddTap(ctx context.Context, name string) error
	InstallFormula(ctx context.Context, name string) error
	InstallCask(ctx context.Context, name string) error
}

// PostinstallRunner runs one postinstall step relative to the recipe directory
type PostinstallRunner interface {
	Run(ctx context.Context, step types.Postinstall, baseDir string) error
}

// Reporter observes progress. It never influences the run.
type Reporter interface {
	Started(step Step)
	Finished(step Step, err error)
}

// Installer executes recipes
type Installer struct {
	brew        Brew
	postinstall PostinstallRunner
	reporter    Reporter
	logger      zerolog.Logger
}

// New creates an Installer
func New(brew Brew, postinstall PostinstallRunner) *Installer {
	return &Installer{
		brew:        brew,
		postinstall: postinstall,
		logger:      logging.GetLogger("bundle"),
	}
}

// WithReporter sets the progress reporter
func (i *Installer) WithReporter(r Reporter) *Installer {
	i.reporter = r
	return i
}

// Plan flattens a recipe into steps in installation order
func Plan(r types.Recipe) []Step {
	steps := make([]Step, 0, len(r.Taps)+len(r.Formulas)+len(r.Casks)+r.StepCount())
	for _, tap := range r.Taps {
		steps = append(steps, Step{Kind: StepTap, Name: tap})
	}
	for _, f := range r.Formulas {
		steps = append(steps, Step{Kind: StepFormula, Name: f.Name})
		for _, p := range f.Postinstall {
			steps = append(steps, Step{Kind: StepPostinstall, Name: p.String(), Formula: f.Name, Postinstall: p})
		}
	}
	for _, cask := range r.Casks {
		steps = append(steps, Step{Kind: StepCask, Name: cask})
	}
	return steps
}

// Install runs every step of the recipe, stopping at the first failure.
// recipeDir is the base for relative copy sources.
func (i *Installer) Install(ctx context.Context, recipeDir string, r types.Recipe) error {
	steps := Plan(r)
	logger := i.logger.With().
		Str("recipeDir", recipeDir).
		Int("steps", len(steps)).
		Logger()
	logger.Info().Msg("Installing recipe")
	done := logging.LogOperationStart(logger, "install")
	defer done()

	for n, step := range steps {
		logger.Debug().
			Int("index", n).
			Str("kind", string(step.Kind)).
			Str("name", step.Name).
			Msg("Executing step")

		if i.reporter != nil {
			i.reporter.Started(step)
		}
		err := i.executeOne(ctx, recipeDir, step)
		if i.reporter != nil {
			i.reporter.Finished(step, err)
		}

		if err != nil {
			logger.Error().
				Err(err).
				Str("kind", string(step.Kind)).
				Str("name", step.Name).
				Msg("Step failed")
			return err
		}
	}

	logger.Info().Msg("Recipe installed")
	return nil
}

func (i *Installer) executeOne(ctx context.Context, recipeDir string, step Step) error {
	switch step.Kind {
	case StepTap:
		return i.brew.AddTap(ctx, step.Name)
	case StepFormula:
		return i.brew.InstallFormula(ctx, step.Name)
	case StepPostinstall:
		return i.postinstall.Run(ctx, step.Postinstall, recipeDir)
	case StepCask:
		return i.brew.InstallCask(ctx, step.Name)
	default:
		return errors.Newf(errors.ErrInternal, "unknown step kind %q", step.Kind)
	}
}
