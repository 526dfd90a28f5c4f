// Package executor runs an execution plan.
//
// Each planned target moves through
//
//	Pending -> {Skipped | Running} -> {Succeeded | Failed}
//
// The staleness verdict is taken right before a target is considered, so
// files produced by earlier recipes in the same build are seen. Recipe lines
// run one at a time through the shell; the first non-zero exit stops the
// whole build and leaves the remaining targets pending.
package executor
