// Package runner invokes external processes for drip.
//
// A Runner distinguishes a process that could not be started (Run returns an
// error) from one that ran and exited unsuccessfully (Run returns a Result
// with a non-zero ExitCode and a nil error). Output is captured in full;
// nothing is streamed to the terminal.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/arthur-debert/drip/pkg/logging"
	"github.com/rs/zerolog"
)

// Result is the captured outcome of a process that ran
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the process exited with status 0
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// StdoutText returns stdout decoded as text
func (r Result) StdoutText() string {
	return Decode(r.Stdout)
}

// StderrText returns stderr decoded as text
func (r Result) StderrText() string {
	return Decode(r.Stderr)
}

// Decode converts process output to a string, replacing invalid UTF-8
// sequences with U+FFFD. Trailing newlines are dropped.
func Decode(b []byte) string {
	return strings.TrimRight(strings.ToValidUTF8(string(b), "�"), "\r\n")
}

// Runner runs an external program to completion
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs programs with os/exec
type ExecRunner struct {
	logger zerolog.Logger
}

// New creates an ExecRunner
func New() *ExecRunner {
	return &ExecRunner{
		logger: logging.GetLogger("runner"),
	}
}

// Run starts name with args and waits for it to exit. There is no timeout;
// the process ends when it exits or ctx is cancelled.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	logging.LogCommand(r.logger, name, args)

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			if result.ExitCode == 0 {
				// Killed by a signal reports -1; anything that isn't a clean exit is a failure.
				result.ExitCode = -1
			}
			r.logger.Debug().
				Str("command", name).
				Int("exitCode", result.ExitCode).
				Str("stderr", result.StderrText()).
				Msg("Command exited unsuccessfully")
			return result, nil
		}

		r.logger.Debug().
			Err(err).
			Str("command", name).
			Msg("Command could not be started")
		return Result{}, err
	}

	r.logger.Trace().
		Str("command", name).
		Int("stdoutBytes", stdout.Len()).
		Msg("Command succeeded")

	return result, nil
}

// Verify interface compliance
var _ Runner = (*ExecRunner)(nil)
