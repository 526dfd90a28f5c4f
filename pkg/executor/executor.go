package executor

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/arthur-debert/makeover/pkg/errors"
	"github.com/arthur-debert/makeover/pkg/filesystem"
	"github.com/arthur-debert/makeover/pkg/logging"
	"github.com/arthur-debert/makeover/pkg/scheduler"
	"github.com/arthur-debert/makeover/pkg/staleness"
	"github.com/arthur-debert/makeover/pkg/types"
	"github.com/arthur-debert/makeover/pkg/ui/output/styles"
	"github.com/rs/zerolog"
)

// NoticePrefix starts every build notice.
const NoticePrefix = "[Makeover]"

// Options contains configuration for the executor
type Options struct {
	Shell types.Shell
	// Filesystem used for staleness checks
	FS types.FS
	// Out receives build notices, os.Stdout when nil
	Out io.Writer
	// Echo prints each resolved command before it runs
	Echo bool
	// Logger defaults to the "executor" component logger when nil
	Logger *zerolog.Logger
}

// Executor walks a plan target by target
type Executor struct {
	shell   types.Shell
	checker *staleness.Checker
	out     io.Writer
	echo    bool
	logger  zerolog.Logger
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS("")
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &Executor{
		shell:   opts.Shell,
		checker: staleness.New(fs),
		out:     out,
		echo:    opts.Echo,
		logger:  logger,
	}
}

// Execute runs plan in order. The returned result is always non-nil and
// reflects every target reached before an error stopped the build.
func (e *Executor) Execute(ctx context.Context, plan *scheduler.Plan) (*types.BuildResult, error) {
	result := types.NewBuildResult("", plan.Entries, plan.Targets)
	result.Started = time.Now()
	defer func() { result.Finished = time.Now() }()

	for i, target := range plan.Targets {
		if err := e.executeTarget(ctx, target, result.Targets[i]); err != nil {
			return result, err
		}
	}

	e.logger.Info().
		Int("succeeded", result.Count(types.StateSucceeded)).
		Int("skipped", result.Count(types.StateSkipped)).
		Msg("Build finished")

	return result, nil
}

// executeTarget decides and, if needed, runs a single target
func (e *Executor) executeTarget(ctx context.Context, target *types.Target, tr *types.TargetResult) error {
	start := time.Now()
	defer func() { tr.Duration = time.Since(start) }()

	logger := e.logger.With().Str("target", target.Name).Logger()

	verdict, err := e.checker.Check(target)
	if err != nil {
		tr.State = types.StateFailed
		tr.Error = err
		return err
	}
	tr.Verdict = verdict

	logger.Debug().Str("verdict", string(verdict)).Msg("Staleness checked")

	if !verdict.NeedsRun() {
		tr.State = types.StateSkipped
		e.notice("UpToDate", fmt.Sprintf("Target '%s' is up to date.", target.Name))
		return nil
	}

	tr.State = types.StateRunning
	e.notice("Notice", fmt.Sprintf("Building target: %s", target.Name))

	for _, command := range target.Commands {
		if e.echo {
			_, _ = fmt.Fprintln(e.out, styles.Render("Command", "  > "+command))
		}
		logging.LogCommand(target.Name, command)
		tr.Commands = append(tr.Commands, command)

		code, err := e.shell.Run(ctx, command)
		if err != nil {
			logger.Error().Err(err).Str("command", command).Msg("Shell could not be started")
			tr.State = types.StateFailed
			tr.FailedCommand = command
			tr.Error = err
			return err
		}
		if code != 0 {
			logger.Error().
				Str("command", command).
				Int("exitCode", code).
				Msg("Recipe command failed")
			tr.State = types.StateFailed
			tr.FailedCommand = command
			tr.ExitCode = code
			tr.Error = errors.RecipeFailure(target.Name, command, code)
			return tr.Error
		}
	}

	tr.State = types.StateSucceeded
	logger.Info().
		Int("commands", len(target.Commands)).
		Dur("duration", time.Since(start)).
		Msg("Target built successfully")

	return nil
}

func (e *Executor) notice(style, message string) {
	_, _ = fmt.Fprintf(e.out, "%s %s\n", styles.Render("Prefix", NoticePrefix), styles.Render(style, message))
}
