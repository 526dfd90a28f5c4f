package core

import (
	"github.com/arthur-debert/makeover/pkg/logging"
	"github.com/arthur-debert/makeover/pkg/parser"
	"github.com/arthur-debert/makeover/pkg/types"
	"github.com/arthur-debert/makeover/pkg/vars"
)

// LoadOptions selects and prepares a build file.
type LoadOptions struct {
	Path string
	// Overrides replace file variables before resolution.
	Overrides    map[string]string
	DefaultGroup string
}

// Load parses the build file at opts.Path and resolves its recipes.
func Load(opts LoadOptions) (*types.Buildfile, error) {
	logger := logging.GetLogger("core.load")
	done := logging.LogOperationStart(logger, "load")
	defer done()

	var parseOpts []parser.Option
	if opts.DefaultGroup != "" {
		parseOpts = append(parseOpts, parser.WithDefaultGroup(opts.DefaultGroup))
	}

	file, err := parser.ParseFile(opts.Path, parseOpts...)
	if err != nil {
		return nil, err
	}

	resolver := vars.New(file.Variables, opts.Overrides)
	resolver.ResolveTargets(file.Targets)

	logger.Debug().
		Str("path", opts.Path).
		Int("targets", len(file.Targets)).
		Int("variables", len(file.Variables)).
		Msg("Build file loaded")

	return file, nil
}
