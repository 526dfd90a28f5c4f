// Package testutil provides utilities for testing makeover components.
//
// Key components:
//   - BuildfileBuilder: Declarative construction of a parsed build file
//   - MemFS: In-memory filesystem with explicit modification times
//   - FakeShell: Recording shell with scripted exit codes and side effects
//
// Usage guidelines:
//   - Engine tests should use MemFS and FakeShell, never the real shell
//   - Only pkg/shell, pkg/core and cmd tests touch real processes and
//     directories, through CreateFile, TouchFile and RequireShell
//   - All test data should be defined inline, not in external files
package testutil
