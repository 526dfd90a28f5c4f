package types

import (
	"context"
	"io/fs"
)

// FS is the filesystem capability used for staleness checks.
// Only existence and modification time are ever consulted.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
}

// Shell runs a single recipe line. The returned exit code is meaningful only
// when err is nil; err reports that the command could not be started at all.
type Shell interface {
	Run(ctx context.Context, command string) (int, error)
}
