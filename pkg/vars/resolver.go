// Package vars expands ${name} references in variable values and recipe lines.
//
// Expansion is single pass: each variable value is expanded once against the
// raw mapping, then each recipe line is expanded once against those resolved
// values. Text produced by a substitution is never scanned again, so chains of
// references cannot loop. A reference to an undefined name expands to the
// empty string, the way an unset shell variable does.
package vars

import (
	"sort"
	"strings"

	"github.com/arthur-debert/makeover/pkg/logging"
	"github.com/arthur-debert/makeover/pkg/types"
	"github.com/rs/zerolog"
)

// Resolver holds the resolved variable mapping for one build.
type Resolver struct {
	resolved map[string]string
	logger   zerolog.Logger
}

// New resolves every value of raw once. Overrides replace raw values before
// resolution, so they participate in expansion like file assignments.
func New(raw map[string]string, overrides map[string]string) *Resolver {
	merged := make(map[string]string, len(raw)+len(overrides))
	for k, v := range raw {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}

	r := &Resolver{
		resolved: make(map[string]string, len(merged)),
		logger:   logging.GetLogger("vars"),
	}
	for name, value := range merged {
		r.resolved[name] = r.expand(value, merged)
	}
	return r
}

// Value returns the resolved value of name.
func (r *Resolver) Value(name string) (string, bool) {
	v, ok := r.resolved[name]
	return v, ok
}

// Names returns the defined variable names, sorted.
func (r *Resolver) Names() []string {
	names := make([]string, 0, len(r.resolved))
	for name := range r.resolved {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Expand substitutes references in s using the resolved values.
func (r *Resolver) Expand(s string) string {
	return r.expand(s, r.resolved)
}

// ResolveTargets fills Commands of every target from its raw Recipe.
func (r *Resolver) ResolveTargets(targets []*types.Target) {
	for _, t := range targets {
		commands := make([]string, len(t.Recipe))
		for i, line := range t.Recipe {
			commands[i] = r.Expand(line)
		}
		t.Commands = commands
	}
}

func (r *Resolver) expand(s string, vars map[string]string) string {
	return expand(s, vars, func(name string) {
		r.logger.Debug().Str("variable", name).Msg("Undefined variable expands to empty string")
	})
}

// Expand substitutes ${name} references in s once using vars.
func Expand(s string, vars map[string]string) string {
	return expand(s, vars, nil)
}

func expand(s string, vars map[string]string, onMissing func(string)) string {
	if !strings.Contains(s, "${") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			b.WriteString(s)
			break
		}
		end := strings.IndexByte(s[start+2:], '}')
		if end < 0 {
			// unterminated reference stays literal
			b.WriteString(s)
			break
		}
		b.WriteString(s[:start])
		name := s[start+2 : start+2+end]
		value, ok := vars[name]
		if !ok && onMissing != nil {
			onMissing(name)
		}
		b.WriteString(value)
		s = s[start+2+end+1:]
	}
	return b.String()
}
