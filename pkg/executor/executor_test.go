package executor_test

import (
	"bytes"
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/arthur-debert/makeover/pkg/errors"
	"github.com/arthur-debert/makeover/pkg/executor"
	"github.com/arthur-debert/makeover/pkg/scheduler"
	"github.com/arthur-debert/makeover/pkg/testutil"
	"github.com/arthur-debert/makeover/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// MockShell implements types.Shell for testing
type MockShell struct {
	mock.Mock
}

func (m *MockShell) Run(ctx context.Context, command string) (int, error) {
	args := m.Called(ctx, command)
	return args.Int(0), args.Error(1)
}

func planOf(file *types.Buildfile, names ...string) *scheduler.Plan {
	plan := &scheduler.Plan{Entries: names[len(names)-1:]}
	for _, name := range names {
		t, ok := file.Target(name)
		if !ok {
			panic("planOf: unknown target " + name)
		}
		plan.Targets = append(plan.Targets, t)
	}
	return plan
}

func TestExecutor_Execute(t *testing.T) {
	tests := []struct {
		name         string
		file         *types.Buildfile
		plan         []string
		setupFS      func(*testing.T, *testutil.MemFS)
		setupShell   func(*testutil.FakeShell)
		wantCommands []string
		wantStates   []types.State
		wantErrCode  errors.ErrorCode
		wantExit     int
	}{
		{
			name: "phony targets always run",
			file: testutil.NewBuildfile().
				Target("clean").Recipe("rm -rf build").
				Build(),
			plan:         []string{"clean"},
			wantCommands: []string{"rm -rf build"},
			wantStates:   []types.State{types.StateSucceeded},
		},
		{
			name: "up to date target is skipped",
			file: testutil.NewBuildfile().
				Target("main.c").
				Target("main.o", "main.c").Recipe("cc -c main.c").
				Build(),
			plan: []string{"main.c", "main.o"},
			setupFS: func(t *testing.T, m *testutil.MemFS) {
				m.Touch(t, "main.c", -time.Minute)
				m.Touch(t, "main.o", 0)
			},
			wantCommands: nil,
			wantStates:   []types.State{types.StateSkipped, types.StateSkipped},
		},
		{
			name: "stale target runs",
			file: testutil.NewBuildfile().
				Target("main.c").
				Target("main.o", "main.c").Recipe("cc -c main.c").
				Build(),
			plan: []string{"main.c", "main.o"},
			setupFS: func(t *testing.T, m *testutil.MemFS) {
				m.Touch(t, "main.o", 0)
				m.Touch(t, "main.c", time.Minute)
			},
			wantCommands: []string{"cc -c main.c"},
			wantStates:   []types.State{types.StateSkipped, types.StateSucceeded},
		},
		{
			name: "recipe lines run in order",
			file: testutil.NewBuildfile().
				Target("all").Recipe("echo one", "echo two", "echo three").
				Build(),
			plan:         []string{"all"},
			wantCommands: []string{"echo one", "echo two", "echo three"},
			wantStates:   []types.State{types.StateSucceeded},
		},
		{
			name: "first failure stops the build",
			file: testutil.NewBuildfile().
				Target("a").Recipe("echo a").
				Target("b").Recipe("echo b", "false", "echo after").
				Target("c", "a", "b").Recipe("echo c").
				Build(),
			plan: []string{"a", "b", "c"},
			setupShell: func(s *testutil.FakeShell) {
				s.Fail("false", 3)
			},
			wantCommands: []string{"echo a", "echo b", "false"},
			wantStates:   []types.State{types.StateSucceeded, types.StateFailed, types.StatePending},
			wantErrCode:  errors.ErrRecipeFailure,
			wantExit:     3,
		},
		{
			name: "shell that cannot start fails the target",
			file: testutil.NewBuildfile().
				Target("a").Recipe("echo a").
				Target("b").Recipe("echo b").
				Build(),
			plan: []string{"a", "b"},
			setupShell: func(s *testutil.FakeShell) {
				s.StartErrors["echo a"] = errors.New(errors.ErrShellStart, "no shell")
			},
			wantCommands: nil,
			wantStates:   []types.State{types.StateFailed, types.StatePending},
			wantErrCode:  errors.ErrShellStart,
			wantExit:     1,
		},
		{
			name: "target without recipe succeeds",
			file: testutil.NewBuildfile().
				Target("all").
				Build(),
			plan:       []string{"all"},
			wantStates: []types.State{types.StateSucceeded},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := testutil.NewMemFS()
			if tt.setupFS != nil {
				tt.setupFS(t, mem)
			}
			shell := testutil.NewFakeShell()
			if tt.setupShell != nil {
				tt.setupShell(shell)
			}

			nop := zerolog.Nop()
			exec := executor.New(executor.Options{
				Shell:  shell,
				FS:     mem.FS(),
				Out:    &bytes.Buffer{},
				Logger: &nop,
			})

			result, err := exec.Execute(context.Background(), planOf(tt.file, tt.plan...))
			require.NotNil(t, result)

			assert.Equal(t, tt.wantCommands, shell.Commands())
			require.Len(t, result.Targets, len(tt.wantStates))
			for i, want := range tt.wantStates {
				assert.Equal(t, want, result.Targets[i].State, "target %s", result.Targets[i].Name)
			}

			if tt.wantErrCode == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.wantErrCode), "got %v", err)
			assert.Equal(t, tt.wantExit, errors.ExitCode(err))
		})
	}
}

func TestExecutor_FailureDetails(t *testing.T) {
	file := testutil.NewBuildfile().
		Target("test").Recipe("go test ./...").
		Build()
	shell := testutil.NewFakeShell().Fail("go test ./...", 2)

	exec := executor.New(executor.Options{Shell: shell, FS: testutil.NewMemFS().FS(), Out: &bytes.Buffer{}})
	result, err := exec.Execute(context.Background(), planOf(file, "test"))
	require.Error(t, err)

	failed := result.Failed()
	require.NotNil(t, failed)
	assert.Equal(t, "test", failed.Name)
	assert.Equal(t, "go test ./...", failed.FailedCommand)
	assert.Equal(t, 2, failed.ExitCode)
	assert.Equal(t, types.VerdictPhony, failed.Verdict)
	assert.Contains(t, err.Error(), "go test ./...")
	assert.False(t, result.Finished.IsZero())
}

func TestExecutor_VerdictTakenBeforeEachTarget(t *testing.T) {
	file := testutil.NewBuildfile().
		Target("prepare").Recipe("generate out").
		Target("in").
		Target("out", "in").Recipe("build out").
		Build()

	mem := testutil.NewMemFS()
	mem.Touch(t, "in", 0)

	shell := testutil.NewFakeShell()
	shell.OnRun = func(command string) {
		if command == "generate out" {
			mem.Touch(t, "out", time.Hour)
		}
	}

	exec := executor.New(executor.Options{Shell: shell, FS: mem.FS(), Out: &bytes.Buffer{}})
	result, err := exec.Execute(context.Background(), planOf(file, "prepare", "in", "out"))
	require.NoError(t, err)

	assert.Equal(t, []string{"generate out"}, shell.Commands())
	assert.Equal(t, types.VerdictUpToDate, result.Targets[2].Verdict)
	assert.Equal(t, types.StateSkipped, result.Targets[2].State)
}

func TestExecutor_Notices(t *testing.T) {
	file := testutil.NewBuildfile().
		Target("src").
		Target("app", "src").Recipe("link app").
		Build()

	mem := testutil.NewMemFS()
	mem.Touch(t, "src", 0)

	var out bytes.Buffer
	exec := executor.New(executor.Options{Shell: testutil.NewFakeShell(), FS: mem.FS(), Out: &out, Echo: true})
	_, err := exec.Execute(context.Background(), planOf(file, "src", "app"))
	require.NoError(t, err)

	assert.Equal(t,
		"[Makeover] Target 'src' is up to date.\n"+
			"[Makeover] Building target: app\n"+
			"  > link app\n",
		out.String())
}

func TestExecutor_PassesContextToShell(t *testing.T) {
	file := testutil.NewBuildfile().
		Target("deploy").Recipe("ship it").
		Build()

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "build-42")

	shell := new(MockShell)
	shell.On("Run", mock.MatchedBy(func(c context.Context) bool {
		return c.Value(ctxKey{}) == "build-42"
	}), "ship it").Return(0, nil).Once()

	exec := executor.New(executor.Options{Shell: shell, FS: testutil.NewMemFS().FS(), Out: &bytes.Buffer{}})
	_, err := exec.Execute(ctx, planOf(file, "deploy"))
	require.NoError(t, err)
	shell.AssertExpectations(t)
}

func TestExecutor_StatErrorFailsTarget(t *testing.T) {
	file := testutil.NewBuildfile().Target("x").Recipe("true").Build()
	shell := new(MockShell)

	exec := executor.New(executor.Options{Shell: shell, FS: brokenFS{}, Out: &bytes.Buffer{}})
	result, err := exec.Execute(context.Background(), planOf(file, "x"))

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
	assert.Equal(t, types.StateFailed, result.Targets[0].State)
	shell.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestExecutor_EmptyPlan(t *testing.T) {
	exec := executor.New(executor.Options{Shell: new(MockShell), FS: testutil.NewMemFS().FS(), Out: &bytes.Buffer{}})
	result, err := exec.Execute(context.Background(), &scheduler.Plan{})
	require.NoError(t, err)
	assert.Empty(t, result.Targets)
}

type brokenFS struct{}

func (brokenFS) Stat(name string) (fs.FileInfo, error) {
	return nil, fs.ErrPermission
}
