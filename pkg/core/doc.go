// Package core implements the build pipeline for makeover.
//
// A run goes through fixed stages, each of which can stop the build before
// any recipe is started:
//
//  1. Parse the build file into targets, variables and groups.
//  2. Resolve ${NAME} references once, with command-line overrides applied.
//  3. Validate that every dependency names a declared target.
//  4. Pick the entry targets (the first declared target by default) and
//     reject cycles reachable from them.
//  5. Schedule the post-order execution plan.
//  6. Execute the plan, stopping at the first failing recipe line.
//
// Recipes run in the directory holding the build file and target names are
// resolved against that directory for staleness checks.
package core
