// Package graph builds the dependency graph between targets and validates it.
//
// Edges point from a target to each of its dependencies. Build checks that
// every dependency names a declared target; CheckCycles walks the closure
// reachable from the entry targets with a three-color depth-first search.
package graph

import (
	"github.com/arthur-debert/makeover/pkg/errors"
	"github.com/arthur-debert/makeover/pkg/logging"
	"github.com/arthur-debert/makeover/pkg/types"
)

// Graph is an adjacency view over the targets of a build file.
type Graph struct {
	targets map[string]*types.Target
	edges   map[string][]*types.Target
	order   []string
}

// Build validates dependencies and returns the graph. The first undeclared
// dependency, in declaration order, is reported as UnknownDependency.
func Build(file *types.Buildfile) (*Graph, error) {
	g := &Graph{
		targets: make(map[string]*types.Target, len(file.Targets)),
		edges:   make(map[string][]*types.Target, len(file.Targets)),
		order:   make([]string, 0, len(file.Targets)),
	}
	for _, t := range file.Targets {
		g.targets[t.Name] = t
		g.order = append(g.order, t.Name)
	}

	for _, t := range file.Targets {
		deps := make([]*types.Target, 0, len(t.Dependencies))
		for _, name := range t.Dependencies {
			dep, ok := g.targets[name]
			if !ok {
				return nil, errors.UnknownDependency(t.Name, name)
			}
			deps = append(deps, dep)
		}
		g.edges[t.Name] = deps
	}

	logger := logging.GetLogger("graph")
	logger.Debug().
		Int("nodes", len(g.targets)).
		Msg("Dependency graph built")

	return g, nil
}

// Target looks up a node by name.
func (g *Graph) Target(name string) (*types.Target, bool) {
	t, ok := g.targets[name]
	return t, ok
}

// Dependencies returns the direct dependencies of name in listing order.
func (g *Graph) Dependencies(name string) []*types.Target {
	return g.edges[name]
}

// Names returns every node in declaration order.
func (g *Graph) Names() []string {
	return append([]string(nil), g.order...)
}

type color int

const (
	white color = iota // unvisited
	gray               // on the current DFS path
	black              // fully explored
)

// CheckCycles reports the first cycle reachable from any of the entries.
// Entry names must exist in the graph.
func (g *Graph) CheckCycles(entries ...string) error {
	colors := make(map[string]color, len(g.targets))
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		colors[name] = gray
		path = append(path, name)

		for _, dep := range g.edges[name] {
			switch colors[dep.Name] {
			case gray:
				return errors.CycleDetected(cycleFrom(path, dep.Name))
			case white:
				if err := visit(dep.Name); err != nil {
					return err
				}
			}
		}

		path = path[:len(path)-1]
		colors[name] = black
		return nil
	}

	for _, entry := range entries {
		if colors[entry] != white {
			continue
		}
		if err := visit(entry); err != nil {
			return err
		}
	}
	return nil
}

// cycleFrom extracts the cycle closing at name from the DFS path, repeating
// name at the end.
func cycleFrom(path []string, name string) []string {
	for i, n := range path {
		if n == name {
			cycle := append([]string(nil), path[i:]...)
			return append(cycle, name)
		}
	}
	return []string{name, name}
}
