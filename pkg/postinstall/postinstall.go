// Package postinstall carries out the steps a recipe attaches to a formula.
//
// Filesystem work goes through types.FS and external tools through
// runner.Runner, so both can be replaced in tests.
package postinstall

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/drip/pkg/errors"
	"github.com/arthur-debert/drip/pkg/logging"
	"github.com/arthur-debert/drip/pkg/paths"
	"github.com/arthur-debert/drip/pkg/runner"
	"github.com/arthur-debert/drip/pkg/types"
)

const (
	// DefaultFetch is the download tool
	DefaultFetch = "curl"
	// DefaultShell runs RunCommand steps
	DefaultShell = "fish"
)

// Interpreter runs postinstall steps
type Interpreter struct {
	fs     types.FS
	runner runner.Runner
	fetch  string
	shell  string
	logger zerolog.Logger
}

// Options configures an Interpreter. Empty tool names mean the defaults.
type Options struct {
	FS     types.FS
	Runner runner.Runner
	Fetch  string
	Shell  string
}

// New creates an Interpreter
func New(opts Options) *Interpreter {
	if opts.Fetch == "" {
		opts.Fetch = DefaultFetch
	}
	if opts.Shell == "" {
		opts.Shell = DefaultShell
	}
	return &Interpreter{
		fs:     opts.FS,
		runner: opts.Runner,
		fetch:  opts.Fetch,
		shell:  opts.Shell,
		logger: logging.GetLogger("postinstall"),
	}
}

// Run carries out one step. Relative copy sources are resolved against
// baseDir, the recipe directory.
func (i *Interpreter) Run(ctx context.Context, step types.Postinstall, baseDir string) error {
	i.logger.Debug().
		Str("kind", string(step.Kind())).
		Str("step", step.String()).
		Msg("Running postinstall step")

	switch s := step.(type) {
	case types.Copy:
		return i.copy(s, baseDir)
	case types.Download:
		return i.download(ctx, s)
	case types.Append:
		return i.append(s)
	case types.RunCommand:
		return i.runCommand(ctx, s)
	default:
		return errors.Newf(errors.ErrInternal, "unknown postinstall step %T", step)
	}
}

func (i *Interpreter) isDir(path string) bool {
	info, err := i.fs.Stat(path)
	return err == nil && info.IsDir()
}

func (i *Interpreter) mkdirAll(dir string) error {
	if err := i.fs.MkdirAll(dir, 0755); err != nil {
		return errors.CreateDirFailed(dir, err.Error())
	}
	return nil
}

// copy places Source inside the Destination directory, creating it first
func (i *Interpreter) copy(s types.Copy, baseDir string) error {
	dst := s.Destination
	if !i.isDir(dst) {
		if err := i.mkdirAll(dst); err != nil {
			return err
		}
	}

	src := paths.ResolveAgainst(baseDir, s.Source)
	target := filepath.Join(dst, filepath.Base(src))
	if err := i.copyFile(src, target); err != nil {
		return errors.CopyFailed(src, dst, err.Error())
	}

	i.logger.Info().Str("src", src).Str("dst", target).Msg("Copied file")
	return nil
}

func (i *Interpreter) copyFile(src, dst string) error {
	in, err := i.fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	out, err := i.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func (i *Interpreter) download(ctx context.Context, s types.Download) error {
	if err := i.mkdirAll(filepath.Dir(s.Destination)); err != nil {
		return err
	}

	args := []string{"-fsSLo", s.Destination, "--create-dirs", s.URL}
	logging.LogCommand(i.logger, i.fetch, args)

	res, err := i.runner.Run(ctx, i.fetch, args...)
	if err != nil {
		return errors.CommandFailed(i.fetch, err.Error())
	}
	if !res.Success() {
		return errors.DownloadFailed(s.URL, s.Destination, res.StderrText())
	}

	i.logger.Info().Str("url", s.URL).Str("dst", s.Destination).Msg("Downloaded file")
	return nil
}

// append never creates Destination
func (i *Interpreter) append(s types.Append) error {
	f, err := i.fs.OpenFile(s.Destination, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return errors.ReadWriteFailed(s.Destination, err.Error())
	}

	if _, err := io.WriteString(f, s.Text+"\n"); err != nil {
		_ = f.Close()
		return errors.ReadWriteFailed(s.Destination, err.Error())
	}
	if err := f.Close(); err != nil {
		return errors.ReadWriteFailed(s.Destination, err.Error())
	}

	i.logger.Info().Str("path", s.Destination).Msg("Appended line")
	return nil
}

func (i *Interpreter) runCommand(ctx context.Context, s types.RunCommand) error {
	args := []string{"-c", s.Command}
	logging.LogCommand(i.logger, i.shell, args)

	res, err := i.runner.Run(ctx, i.shell, args...)
	if err != nil {
		return errors.CommandFailed(i.shell, err.Error())
	}
	if !res.Success() {
		return errors.CommandFailed(s.Command, res.StderrText())
	}
	return nil
}
