package types

import "time"

// TargetResult is the outcome of one planned target.
type TargetResult struct {
	Name    string  `json:"name"`
	State   State   `json:"state"`
	Verdict Verdict `json:"verdict,omitempty"`

	// Commands holds the resolved recipe lines that were started.
	Commands []string `json:"commands,omitempty"`

	// FailedCommand and ExitCode are set when State is StateFailed.
	FailedCommand string `json:"failedCommand,omitempty"`
	ExitCode      int    `json:"exitCode,omitempty"`

	Duration time.Duration `json:"duration"`
	Error    error         `json:"-"`
}

// BuildResult collects the per-target outcomes of a build, in plan order.
// Targets the build never reached stay in StatePending.
type BuildResult struct {
	Buildfile string          `json:"buildfile"`
	Entries   []string        `json:"entries"`
	Targets   []*TargetResult `json:"targets"`
	Started   time.Time       `json:"started"`
	Finished  time.Time       `json:"finished"`
}

// NewBuildResult creates a result with every planned target pending.
func NewBuildResult(buildfile string, entries []string, targets []*Target) *BuildResult {
	r := &BuildResult{
		Buildfile: buildfile,
		Entries:   entries,
		Targets:   make([]*TargetResult, len(targets)),
	}
	for i, t := range targets {
		r.Targets[i] = &TargetResult{Name: t.Name, State: StatePending}
	}
	return r
}

// Failed returns the failed target, if any.
func (r *BuildResult) Failed() *TargetResult {
	for _, t := range r.Targets {
		if t.State == StateFailed {
			return t
		}
	}
	return nil
}

// Count returns how many targets ended in state.
func (r *BuildResult) Count(state State) int {
	n := 0
	for _, t := range r.Targets {
		if t.State == state {
			n++
		}
	}
	return n
}

// Duration is the wall time of the whole build.
func (r *BuildResult) Duration() time.Duration {
	if r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}
