package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/makeover/pkg/types"
)

// BuildfileBuilder assembles a types.Buildfile without going through the parser.
type BuildfileBuilder struct {
	file *types.Buildfile
	last *types.Target
	line int
}

// NewBuildfile starts an empty build file.
func NewBuildfile() *BuildfileBuilder {
	return &BuildfileBuilder{file: types.NewBuildfile()}
}

// Var records a variable assignment.
func (b *BuildfileBuilder) Var(name, value string) *BuildfileBuilder {
	b.line++
	b.file.SetVariable(name, value, b.line)
	return b
}

// Target declares a target with its dependencies, in the default group.
func (b *BuildfileBuilder) Target(name string, deps ...string) *BuildfileBuilder {
	b.line++
	t := &types.Target{
		Name:         name,
		Dependencies: deps,
		Group:        types.DefaultGroup,
		Line:         b.line,
	}
	b.file.AddTarget(t)
	b.last = t
	return b
}

// Recipe appends raw recipe lines to the most recently declared target.
func (b *BuildfileBuilder) Recipe(lines ...string) *BuildfileBuilder {
	if b.last == nil {
		panic("testutil: Recipe called before Target")
	}
	b.last.Recipe = append(b.last.Recipe, lines...)
	b.line += len(lines)
	return b
}

// Doc sets the doc string of the most recently declared target.
func (b *BuildfileBuilder) Doc(doc string) *BuildfileBuilder {
	if b.last == nil {
		panic("testutil: Doc called before Target")
	}
	b.last.Doc = doc
	return b
}

// Group sets the group of the most recently declared target.
func (b *BuildfileBuilder) Group(group string) *BuildfileBuilder {
	if b.last == nil {
		panic("testutil: Group called before Target")
	}
	b.last.Group = group
	return b
}

// Build returns the assembled build file. Commands are copied from the raw
// recipe so the result can be executed without a resolver pass.
func (b *BuildfileBuilder) Build() *types.Buildfile {
	for _, t := range b.file.Targets {
		if t.Commands == nil {
			t.Commands = append([]string(nil), t.Recipe...)
		}
	}
	return b.file
}

// WriteBuildfile writes content to a file named "buildfile" in a fresh
// temporary directory and returns its path.
func WriteBuildfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "buildfile")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("testutil: write buildfile: %v", err)
	}
	return path
}
