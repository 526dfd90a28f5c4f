package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/makeover/pkg/executor"
	"github.com/arthur-debert/makeover/pkg/filesystem"
	"github.com/arthur-debert/makeover/pkg/graph"
	"github.com/arthur-debert/makeover/pkg/logging"
	"github.com/arthur-debert/makeover/pkg/scheduler"
	"github.com/arthur-debert/makeover/pkg/shell"
	"github.com/arthur-debert/makeover/pkg/types"
)

// NoTargetsMessage is printed when the build file declares no target and
// none was requested.
const NoTargetsMessage = "No targets found in buildfile."

// ExecuteOptions contains options for a build
type ExecuteOptions struct {
	Buildfile string
	// Targets requested on the command line, in order. Empty means the
	// first declared target.
	Targets   []string
	Overrides map[string]string

	// Shell runs recipe lines. When nil a /bin/sh runner (or ShellPath
	// with ShellFlag) rooted at the build file's directory is used.
	Shell     types.Shell
	ShellPath string
	ShellFlag string

	// FileSystem for staleness checks, rooted at the build file's
	// directory when nil.
	FileSystem types.FS

	// Out receives build notices, os.Stdout when nil.
	Out          io.Writer
	Echo         bool
	DefaultGroup string
}

// Execute runs a whole build. The result is non-nil whenever planning
// succeeded, including when a recipe failed, so callers can report partial
// progress.
func Execute(ctx context.Context, opts ExecuteOptions) (*types.BuildResult, error) {
	logger := logging.GetLogger("core.execute")
	logger.Info().
		Str("buildfile", opts.Buildfile).
		Strs("targets", opts.Targets).
		Bool("echo", opts.Echo).
		Msg("Starting build")

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	// Step 1: Parse and resolve
	file, err := Load(LoadOptions{
		Path:         opts.Buildfile,
		Overrides:    opts.Overrides,
		DefaultGroup: opts.DefaultGroup,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load build file")
		return nil, err
	}

	// Step 2: Plan
	plan, err := Plan(file, opts.Targets)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to plan build")
		return nil, err
	}
	if len(plan.Entries) == 0 {
		_, _ = fmt.Fprintln(out, NoTargetsMessage)
		now := time.Now()
		return &types.BuildResult{Buildfile: opts.Buildfile, Started: now, Finished: now}, nil
	}

	logger.Debug().
		Strs("entries", plan.Entries).
		Strs("plan", plan.Names()).
		Msg("Execution plan ready")

	// Step 3: Execute
	dir := filepath.Dir(opts.Buildfile)
	sh := opts.Shell
	if sh == nil {
		sh = shell.New(shell.Options{
			Path: opts.ShellPath,
			Flag: opts.ShellFlag,
			Dir:  dir,
		})
	}
	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS(dir)
	}

	exec := executor.New(executor.Options{
		Shell: sh,
		FS:    fs,
		Out:   out,
		Echo:  opts.Echo,
	})

	done := logging.LogOperationStart(logger, "execute")
	result, err := exec.Execute(ctx, plan)
	done()
	result.Buildfile = opts.Buildfile

	if err != nil {
		logger.Error().Err(err).Msg("Build failed")
		return result, err
	}

	logger.Info().
		Int("targets", len(result.Targets)).
		Dur("duration", result.Duration()).
		Msg("Build completed successfully")

	return result, nil
}

// Plan validates the dependency graph and schedules the requested entries.
// It returns a plan with no entries for a build file without targets when
// nothing was requested.
func Plan(file *types.Buildfile, requested []string) (*scheduler.Plan, error) {
	g, err := graph.Build(file)
	if err != nil {
		return nil, err
	}

	entries := scheduler.Entries(file, requested)
	if len(entries) == 0 {
		return &scheduler.Plan{}, nil
	}

	return scheduler.Schedule(g, entries)
}
