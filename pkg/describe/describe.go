// Package describe renders a single target as markdown for the terminal.
package describe

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/makeover/pkg/types"
	"github.com/charmbracelet/glamour"
)

// Renderer turns target descriptions into terminal output.
type Renderer struct {
	Style string // Style name: "dark", "light", "notty", "auto", or path to custom style
	Width int    // Word wrap width (0 = glamour default)
}

// NewRenderer creates a renderer that auto-detects the terminal style
func NewRenderer() *Renderer {
	return &Renderer{Style: "auto"}
}

// Markdown builds the markdown description of t. Commands are shown after
// variable substitution, as they would run.
func Markdown(t *types.Target) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t.Name)
	if t.Doc != "" {
		fmt.Fprintf(&b, "%s\n\n", t.Doc)
	}

	group := t.Group
	if group == "" {
		group = types.DefaultGroup
	}
	fmt.Fprintf(&b, "**Group:** %s\n\n", group)

	b.WriteString("## Dependencies\n\n")
	if len(t.Dependencies) == 0 {
		b.WriteString("_none_\n\n")
	} else {
		for _, dep := range t.Dependencies {
			fmt.Fprintf(&b, "- `%s`\n", dep)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Recipe\n\n")
	commands := t.Commands
	if commands == nil {
		commands = t.Recipe
	}
	if len(commands) == 0 {
		b.WriteString("_none_\n")
	} else {
		b.WriteString("```sh\n")
		for _, c := range commands {
			b.WriteString(c)
			b.WriteString("\n")
		}
		b.WriteString("```\n")
	}

	return b.String()
}

// Render returns the styled description of t. If glamour cannot render, the
// plain markdown is returned together with the error.
func (r *Renderer) Render(t *types.Target) (string, error) {
	content := Markdown(t)

	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStandardStyle(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content, err
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content, err
	}
	return rendered, nil
}
