package types

import "fmt"

// DefaultGroup is the group assigned to targets declared before any
// [group: ...] marker.
const DefaultGroup = "General"

// Target is a named build unit with its dependencies and recipe.
type Target struct {
	Name         string
	Dependencies []string
	// Recipe holds the raw lines as written in the build file.
	Recipe []string
	// Commands holds the recipe lines after variable substitution. It is
	// filled once by the resolver and never re-resolved.
	Commands []string
	Doc      string
	Group    string
	// Line is the 1-based line of the target header.
	Line int
}

// String provides a simple representation, useful for debugging.
func (t *Target) String() string {
	return fmt.Sprintf("Target(%s: %v)", t.Name, t.Dependencies)
}

// Variable is a single assignment as it appeared in the build file.
type Variable struct {
	Name  string
	Value string
	Line  int
}
