package types

// Buildfile is the structured form of a parsed build file.
type Buildfile struct {
	// Path is the file the model was read from, empty for in-memory input.
	Path string
	// Variables maps names to raw values, last assignment wins.
	Variables map[string]string
	// Assignments keeps every assignment in file order.
	Assignments []Variable
	// Targets in declaration order.
	Targets []*Target

	index map[string]*Target
}

// NewBuildfile creates an empty, initialized Buildfile.
func NewBuildfile() *Buildfile {
	return &Buildfile{
		Variables: make(map[string]string),
		index:     make(map[string]*Target),
	}
}

// SetVariable records an assignment. Later assignments shadow earlier ones.
func (b *Buildfile) SetVariable(name, value string, line int) {
	b.Variables[name] = value
	b.Assignments = append(b.Assignments, Variable{Name: name, Value: value, Line: line})
}

// AddTarget appends a target and indexes it by name. It reports false if the
// name is already taken, leaving the existing target untouched.
func (b *Buildfile) AddTarget(t *Target) bool {
	if b.index == nil {
		b.index = make(map[string]*Target)
	}
	if _, exists := b.index[t.Name]; exists {
		return false
	}
	b.index[t.Name] = t
	b.Targets = append(b.Targets, t)
	return true
}

// Target looks up a target by name.
func (b *Buildfile) Target(name string) (*Target, bool) {
	t, ok := b.index[name]
	return t, ok
}

// DefaultTarget returns the first declared target, or "" for an empty file.
func (b *Buildfile) DefaultTarget() string {
	if len(b.Targets) == 0 {
		return ""
	}
	return b.Targets[0].Name
}

// TargetNames returns all target names in declaration order.
func (b *Buildfile) TargetNames() []string {
	names := make([]string, 0, len(b.Targets))
	for _, t := range b.Targets {
		names = append(names, t.Name)
	}
	return names
}
