// Package staleness decides whether a target's recipe has to run.
//
// A target with no filesystem entry of the same name is Phony and always
// runs. A target backed by a file is UpToDate when every dependency exists
// and none was modified after it; otherwise it is Stale. Verdicts are taken
// one target at a time, right before execution, because earlier recipes
// change the filesystem.
package staleness

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/makeover/pkg/errors"
	"github.com/arthur-debert/makeover/pkg/logging"
	"github.com/arthur-debert/makeover/pkg/types"
	"github.com/rs/zerolog"
)

// Checker evaluates verdicts against a filesystem.
type Checker struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a checker reading modification times from fsys.
func New(fsys types.FS) *Checker {
	return &Checker{
		fs:     fsys,
		logger: logging.GetLogger("staleness"),
	}
}

// Check returns the current verdict for t.
func (c *Checker) Check(t *types.Target) (types.Verdict, error) {
	info, exists, err := c.stat(t.Name)
	if err != nil {
		return "", err
	}
	if !exists {
		c.logger.Debug().Str("target", t.Name).Msg("No file named after target, treating as phony")
		return types.VerdictPhony, nil
	}

	for _, dep := range t.Dependencies {
		depInfo, depExists, err := c.stat(dep)
		if err != nil {
			return "", err
		}
		if !depExists {
			c.logger.Debug().Str("target", t.Name).Str("dependency", dep).Msg("Dependency missing on disk, target is stale")
			return types.VerdictStale, nil
		}
		if depInfo.ModTime().After(info.ModTime()) {
			c.logger.Debug().
				Str("target", t.Name).
				Str("dependency", dep).
				Time("targetModTime", info.ModTime()).
				Time("dependencyModTime", depInfo.ModTime()).
				Msg("Dependency is newer than target")
			return types.VerdictStale, nil
		}
	}

	return types.VerdictUpToDate, nil
}

func (c *Checker) stat(name string) (fs.FileInfo, bool, error) {
	info, err := c.fs.Stat(name)
	if err == nil {
		return info, true, nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	return nil, false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat '%s'", name).
		WithDetail(errors.DetailPath, name)
}
