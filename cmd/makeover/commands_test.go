package makeover

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/makeover/pkg/errors"
	"github.com/arthur-debert/makeover/pkg/testutil"
	"github.com/beevik/etree"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG locations at temporary directories so tests never
// read the user's config or write to their log file.
func isolate(t *testing.T) {
	t.Helper()
	// Registered first so it runs after the environment is restored.
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	xdg.Reload()
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		wantTargets   []string
		wantOverrides map[string]string
	}{
		{
			name:          "targets only",
			args:          []string{"build", "test"},
			wantTargets:   []string{"build", "test"},
			wantOverrides: map[string]string{},
		},
		{
			name:          "mixed",
			args:          []string{"release", "mode=prod", "cc=clang -O2"},
			wantTargets:   []string{"release"},
			wantOverrides: map[string]string{"mode": "prod", "cc": "clang -O2"},
		},
		{
			name:          "empty value",
			args:          []string{"flags="},
			wantOverrides: map[string]string{"flags": ""},
		},
		{
			name:          "leading equals is not an override",
			args:          []string{"=x"},
			wantTargets:   []string{"=x"},
			wantOverrides: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets, overrides := splitArgs(tt.args)
			assert.Equal(t, tt.wantTargets, targets)
			assert.Equal(t, tt.wantOverrides, overrides)
		})
	}
}

func TestRootCmd_Build(t *testing.T) {
	isolate(t)
	testutil.RequireShell(t)

	path := testutil.WriteBuildfile(t, `
msg = hello
all: made
made:
	echo ${msg} > made
`)

	out, err := execute(t, "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[Makeover] Building target: made")
	assert.Contains(t, out, "[Makeover] Building target: all")

	testutil.AssertFileContent(t, filepath.Join(filepath.Dir(path), "made"), "hello\n")

	// made now exists with no dependencies: second run skips it.
	out, err = execute(t, "-f", path, "made")
	require.NoError(t, err)
	assert.Contains(t, out, "[Makeover] Target 'made' is up to date.")
}

func TestRootCmd_VariableOverride(t *testing.T) {
	isolate(t)
	testutil.RequireShell(t)

	path := testutil.WriteBuildfile(t, "mode = debug\nall:\n\techo ${mode} > mode.txt\n")

	_, err := execute(t, "-f", path, "mode=release")
	require.NoError(t, err)

	testutil.AssertFileContent(t, filepath.Join(filepath.Dir(path), "mode.txt"), "release\n")
}

func TestRootCmd_RecipeFailureExitCode(t *testing.T) {
	isolate(t)
	testutil.RequireShell(t)

	path := testutil.WriteBuildfile(t, "all: broken\n\ttouch never\nbroken:\n\texit 5\n")
	reportPath := filepath.Join(t.TempDir(), "report.xml")

	_, err := execute(t, "-f", path, "--report", reportPath)
	require.Error(t, err)
	assert.Equal(t, 5, errors.ExitCode(err))

	testutil.AssertNoFile(t, filepath.Join(filepath.Dir(path), "never"))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(reportPath))
	root := doc.SelectElement("build")
	require.NotNil(t, root)
	assert.Equal(t, "failed", root.SelectAttrValue("status", ""))
	assert.NotNil(t, root.FindElement("target[@name='broken']/failure"))
}

func TestRootCmd_InvalidBuildExitCode(t *testing.T) {
	isolate(t)

	path := testutil.WriteBuildfile(t, "a: b\nb: a\n")
	reportPath := filepath.Join(t.TempDir(), "report.xml")

	_, err := execute(t, "-f", path, "--report", reportPath)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCycleDetected))
	assert.Equal(t, errors.ExitInvalidBuild, errors.ExitCode(err))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(reportPath))
	assert.Equal(t, "rejected", doc.SelectElement("build").SelectAttrValue("status", ""))
}

func TestRootCmd_MissingBuildfile(t *testing.T) {
	isolate(t)

	_, err := execute(t, "-f", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBuildfileNotFound))
	assert.Equal(t, errors.ExitFailure, errors.ExitCode(err))
}

func TestRootCmd_List(t *testing.T) {
	isolate(t)

	path := testutil.WriteBuildfile(t, `
[group: Build]
# Compile the project
build:
	go build ./...
[group: Quality]
test: build
	go test ./...
`)

	out, err := execute(t, "-f", path, "--list")
	require.NoError(t, err)
	assert.Equal(t, "Available targets:\n\nBuild:\n  build  # Compile the project\n\nQuality:\n  test\n", out)
}

func TestRootCmd_Describe(t *testing.T) {
	isolate(t)

	path := testutil.WriteBuildfile(t, "cc = gcc\n# Compile main\nmain.o: main.c\n\t${cc} -c main.c\nmain.c:\n")

	out, err := execute(t, "-f", path, "--describe", "main.o")
	require.NoError(t, err)
	assert.Contains(t, out, "main.o")
	assert.Contains(t, out, "Compile main")
	assert.Contains(t, out, "gcc -c main.c")

	_, err = execute(t, "-f", path, "--describe", "main.x")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownTarget))
}

func TestRootCmd_PrintConfig(t *testing.T) {
	isolate(t)

	out, err := execute(t, "--print-config", "-f", "custom.build", "--shell", "/bin/bash")
	require.NoError(t, err)
	assert.Contains(t, out, "buildfile = ")
	assert.Contains(t, out, "custom.build")
	assert.Contains(t, out, "/bin/bash")
}

func TestRootCmd_ExclusiveModes(t *testing.T) {
	isolate(t)

	_, err := execute(t, "--list", "--print-config")
	assert.Error(t, err)
}

func TestRootCmd_EmptyBuildfile(t *testing.T) {
	isolate(t)

	path := testutil.WriteBuildfile(t, "# nothing yet\n")
	out, err := execute(t, "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "No targets found in buildfile.\n", out)
}

func TestTargetNamesCompletion(t *testing.T) {
	isolate(t)

	path := testutil.WriteBuildfile(t, "build:\ntest:\ntidy:\n")
	cmd := NewRootCmd()
	require.NoError(t, cmd.Flags().Set("file", path))

	names, directive := targetNamesCompletion(cmd, []string{"test"}, "t")
	assert.Equal(t, []string{"tidy"}, names)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	require.NoError(t, cmd.Flags().Set("file", filepath.Join(t.TempDir(), "missing")))
	_, directive = targetNamesCompletion(cmd, nil, "")
	assert.Equal(t, cobra.ShellCompDirectiveError, directive)
}

func TestInstallBinary(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/build/makeover", []byte("binary-v2"), 0755))
	require.NoError(t, afero.WriteFile(fs, "/home/u/.local/bin/makeover", []byte("binary-v1"), 0755))

	dest, err := installBinary(fs, "/build/makeover", "/home/u/.local/bin")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/.local/bin/makeover", dest)

	data, err := afero.ReadFile(fs, dest)
	require.NoError(t, err)
	assert.Equal(t, "binary-v2", string(data))

	exists, err := afero.Exists(fs, dest+".tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInstallBinaryMissingSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := installBinary(fs, "/nowhere/makeover", "/bin")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInstall))
}
