// Package version carries build information stamped in at link time.
package version

import "fmt"

var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/makeover/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/makeover/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/makeover/internal/version.Date={{.Date}}
)

// String is the text shown by --version. Development builds omit the
// commit and date when they were not stamped.
func String() string {
	if Commit == "unknown" && Date == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
