// Package shell hands recipe lines to the system shell.
//
// Every command is an independent process: no state such as the working
// directory or exported variables carries over between lines.
package shell

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"

	"github.com/arthur-debert/makeover/pkg/errors"
	"github.com/arthur-debert/makeover/pkg/logging"
	"github.com/rs/zerolog"
)

const (
	DefaultPath = "/bin/sh"
	DefaultFlag = "-c"
)

// execCommandContext is a variable to allow mocking in tests
var execCommandContext = exec.CommandContext

// Options configures a Runner. Zero values fall back to /bin/sh -c with the
// process' own stdio.
type Options struct {
	Path   string
	Flag   string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner runs commands as `<path> <flag> <command>`.
type Runner struct {
	path   string
	flag   string
	dir    string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger
}

// New creates a runner.
func New(opts Options) *Runner {
	r := &Runner{
		path:   opts.Path,
		flag:   opts.Flag,
		dir:    opts.Dir,
		stdin:  opts.Stdin,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		logger: logging.GetLogger("shell"),
	}
	if r.path == "" {
		r.path = DefaultPath
	}
	if r.flag == "" {
		r.flag = DefaultFlag
	}
	if r.stdin == nil {
		r.stdin = os.Stdin
	}
	if r.stdout == nil {
		r.stdout = os.Stdout
	}
	if r.stderr == nil {
		r.stderr = os.Stderr
	}
	return r
}

// Run executes command and returns its exit status. A non-nil error means
// the shell could not be started at all; a command that ran and failed is
// reported only through the exit code.
func (r *Runner) Run(ctx context.Context, command string) (int, error) {
	cmd := execCommandContext(ctx, r.path, r.flag, command)
	cmd.Dir = r.dir
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	r.logger.Trace().
		Str("shell", r.path).
		Str("dir", r.dir).
		Str("command", command).
		Msg("Starting shell")

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal, including context cancellation.
			code = 1
		}
		r.logger.Debug().
			Str("command", command).
			Int("exitCode", code).
			Msg("Command exited with non-zero status")
		return code, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return 1, nil
	}

	return -1, errors.Wrapf(err, errors.ErrShellStart, "failed to start shell '%s'", r.path).
		WithDetail(errors.DetailCommand, command)
}
