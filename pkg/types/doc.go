// Package types defines the core types and interfaces used throughout makeover.
// This includes the parsed build file model (Buildfile, Target), the staleness
// Verdict and per-target execution State, as well as the FS and Shell
// collaborator interfaces consumed by the engine.
package types
