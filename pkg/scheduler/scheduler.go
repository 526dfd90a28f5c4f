// Package scheduler turns entry targets into an execution plan.
//
// The plan is the post-order of a depth-first walk from each entry: every
// dependency is appended before the target that needs it, and a visited set
// keeps each target to a single appearance even under diamond dependencies.
// Dependencies are walked in the order they are listed on the header line and
// entries in the order requested, so the plan is fully deterministic.
package scheduler

import (
	"github.com/arthur-debert/makeover/pkg/errors"
	"github.com/arthur-debert/makeover/pkg/graph"
	"github.com/arthur-debert/makeover/pkg/logging"
	"github.com/arthur-debert/makeover/pkg/types"
)

// Plan is the ordered set of targets to consider for one build.
type Plan struct {
	Entries []string
	Targets []*types.Target
}

// Names returns the planned target names in execution order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.Targets))
	for i, t := range p.Targets {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of planned targets.
func (p *Plan) Len() int {
	return len(p.Targets)
}

// Entries resolves the requested names, falling back to the first declared
// target when none were given. An empty build file yields no entries.
func Entries(file *types.Buildfile, requested []string) []string {
	if len(requested) > 0 {
		return requested
	}
	if def := file.DefaultTarget(); def != "" {
		return []string{def}
	}
	return nil
}

// Schedule validates the entries, rejects cycles reachable from them and
// returns the execution plan.
func Schedule(g *graph.Graph, entries []string) (*Plan, error) {
	for _, name := range entries {
		if _, ok := g.Target(name); !ok {
			return nil, errors.UnknownTarget(name, Suggest(name, g.Names()))
		}
	}

	if err := g.CheckCycles(entries...); err != nil {
		return nil, err
	}

	plan := &Plan{Entries: append([]string(nil), entries...)}
	visited := make(map[string]bool)

	var visit func(t *types.Target)
	visit = func(t *types.Target) {
		if visited[t.Name] {
			return
		}
		visited[t.Name] = true
		for _, dep := range g.Dependencies(t.Name) {
			visit(dep)
		}
		plan.Targets = append(plan.Targets, t)
	}

	for _, name := range entries {
		t, _ := g.Target(name)
		visit(t)
	}

	logger := logging.GetLogger("scheduler")
	logger.Debug().
		Strs("entries", entries).
		Strs("plan", plan.Names()).
		Msg("Execution plan computed")

	return plan, nil
}
