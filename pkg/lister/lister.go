// Package lister renders the targets of a build file grouped for humans.
package lister

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/makeover/pkg/types"
	"github.com/arthur-debert/makeover/pkg/ui/output/styles"
	"github.com/charmbracelet/lipgloss"
)

// Title heads the listing.
const Title = "Available targets:"

// Group is a named set of targets in declaration order.
type Group struct {
	Name    string
	Targets []*types.Target
}

// Groups buckets targets by group, ordering groups by first appearance.
func Groups(file *types.Buildfile) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, t := range file.Targets {
		name := t.Group
		if name == "" {
			name = types.DefaultGroup
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Name: name})
		}
		groups[i].Targets = append(groups[i].Targets, t)
	}

	return groups
}

// Render writes the grouped listing to w. Names within a group are padded
// to a common display column so doc comments line up.
func Render(w io.Writer, file *types.Buildfile) error {
	var b strings.Builder

	b.WriteString(styles.Render("Title", Title))
	b.WriteString("\n")

	for _, g := range Groups(file) {
		fmt.Fprintf(&b, "\n%s:\n", styles.Render("Group", g.Name))

		width := 0
		for _, t := range g.Targets {
			if w := lipgloss.Width(t.Name); w > width {
				width = w
			}
		}

		for _, t := range g.Targets {
			b.WriteString("  ")
			b.WriteString(styles.Render("Target", t.Name))
			if t.Doc != "" {
				b.WriteString(strings.Repeat(" ", width-lipgloss.Width(t.Name)+2))
				b.WriteString(styles.Render("Doc", "# "+t.Doc))
			}
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
