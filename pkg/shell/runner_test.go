package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/makeover/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, dir string) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	if _, err := os.Stat(DefaultPath); err != nil {
		t.Skipf("%s not available", DefaultPath)
	}
	var stdout, stderr bytes.Buffer
	r := New(Options{
		Dir:    dir,
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	return r, &stdout, &stderr
}

func TestRunSuccess(t *testing.T) {
	r, stdout, _ := newTestRunner(t, "")

	code, err := r.Run(context.Background(), "echo hello world")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello world\n", stdout.String())
}

func TestRunReturnsExitCode(t *testing.T) {
	r, _, stderr := newTestRunner(t, "")

	code, err := r.Run(context.Background(), "echo oops >&2; exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Equal(t, "oops\n", stderr.String())
}

func TestRunUsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	r, _, _ := newTestRunner(t, dir)

	code, err := r.Run(context.Background(), "touch created")
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	_, statErr := os.Stat(filepath.Join(dir, "created"))
	assert.NoError(t, statErr)
}

func TestRunCommandsAreIndependent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	r, stdout, _ := newTestRunner(t, dir)

	_, err := r.Run(context.Background(), "cd sub && export FOO=bar")
	require.NoError(t, err)
	_, err = r.Run(context.Background(), `basename "$(pwd)"; echo "[$FOO]"`)
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(dir)+"\n[]\n", stdout.String())
}

func TestRunMissingShell(t *testing.T) {
	r := New(Options{Path: filepath.Join(t.TempDir(), "no-such-shell")})

	code, err := r.Run(context.Background(), "true")
	require.Error(t, err)
	assert.Equal(t, -1, code)
	assert.True(t, errors.IsErrorCode(err, errors.ErrShellStart))
	assert.Equal(t, "true", errors.GetErrorDetails(err)[errors.DetailCommand])
}

func TestRunCancelledContext(t *testing.T) {
	r, _, _ := newTestRunner(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code, err := r.Run(ctx, "sleep 5")
	require.NoError(t, err)
	assert.NotEqual(t, 0, code)
}

func TestNewDefaults(t *testing.T) {
	r := New(Options{})
	assert.Equal(t, DefaultPath, r.path)
	assert.Equal(t, DefaultFlag, r.flag)
	assert.Equal(t, os.Stdout, r.stdout)
}
