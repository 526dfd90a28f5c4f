package types

// Verdict is the staleness decision for a single target.
type Verdict string

const (
	// VerdictStale means the target file exists but a dependency is missing or newer.
	VerdictStale Verdict = "stale"
	// VerdictUpToDate means the target file exists and no dependency is newer.
	VerdictUpToDate Verdict = "up-to-date"
	// VerdictPhony means no filesystem entry is named after the target.
	VerdictPhony Verdict = "phony"
)

// NeedsRun reports whether a target with this verdict must execute its recipe.
func (v Verdict) NeedsRun() bool {
	return v == VerdictStale || v == VerdictPhony
}

// State tracks a target through a single build.
//
//	Pending -> {Skipped | Running} -> {Succeeded | Failed}
type State string

const (
	StatePending   State = "pending"
	StateSkipped   State = "skipped"
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// IsTerminal reports whether no further transition is possible.
func (s State) IsTerminal() bool {
	return s == StateSkipped || s == StateSucceeded || s == StateFailed
}
