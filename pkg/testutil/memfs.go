package testutil

import (
	"testing"
	"time"

	"github.com/arthur-debert/makeover/pkg/filesystem"
	"github.com/arthur-debert/makeover/pkg/types"
	"github.com/spf13/afero"
)

// BaseTime is a fixed instant test modification times are expressed against.
var BaseTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// MemFS is an in-memory filesystem with explicit modification times.
type MemFS struct {
	Fs afero.Fs
}

// NewMemFS creates an empty in-memory filesystem.
func NewMemFS() *MemFS {
	return &MemFS{Fs: afero.NewMemMapFs()}
}

// FS returns the types.FS view used by the engine.
func (m *MemFS) FS() types.FS {
	return filesystem.NewAferoFS(m.Fs)
}

// Touch creates name if needed and sets its modification time to
// BaseTime plus offset.
func (m *MemFS) Touch(t *testing.T, name string, offset time.Duration) {
	t.Helper()
	m.TouchAt(t, name, BaseTime.Add(offset))
}

// TouchAt creates name if needed and sets its modification time.
func (m *MemFS) TouchAt(t *testing.T, name string, mtime time.Time) {
	t.Helper()
	if _, err := m.Fs.Stat(name); err != nil {
		if err := afero.WriteFile(m.Fs, name, []byte(name), 0644); err != nil {
			t.Fatalf("testutil: create %s: %v", name, err)
		}
	}
	if err := m.Fs.Chtimes(name, mtime, mtime); err != nil {
		t.Fatalf("testutil: chtimes %s: %v", name, err)
	}
}

// Exists reports whether name is present.
func (m *MemFS) Exists(name string) bool {
	_, err := m.Fs.Stat(name)
	return err == nil
}
