package filesystem

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/makeover/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS implements types.FS using afero
type aferoFS struct {
	fs afero.Fs
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs}
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

// rootedFS resolves relative names against a base directory, including
// names that climb out of it with "..", and absolute names as given.
type rootedFS struct {
	fs  afero.Fs
	dir string
}

// NewOS creates an OS-backed filesystem where relative names resolve against
// dir. An empty dir means the process working directory.
func NewOS(dir string) types.FS {
	osFs := afero.NewOsFs()
	if dir == "" || dir == "." {
		return &aferoFS{fs: osFs}
	}
	return &rootedFS{fs: osFs, dir: dir}
}

func (r *rootedFS) Stat(name string) (fs.FileInfo, error) {
	if filepath.IsAbs(name) {
		return r.fs.Stat(name)
	}
	return r.fs.Stat(filepath.Join(r.dir, name))
}
