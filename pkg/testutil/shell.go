package testutil

import (
	"context"
	"sync"
)

// FakeShell records every command and answers with scripted exit codes.
type FakeShell struct {
	mu sync.Mutex

	// ExitCodes maps a command to the exit code it returns, default 0.
	ExitCodes map[string]int
	// StartErrors maps a command to an error returned instead of running it.
	StartErrors map[string]error
	// OnRun is invoked for every command before it "exits", letting tests
	// emulate recipe side effects such as creating files.
	OnRun func(command string)

	commands []string
}

// NewFakeShell creates a shell where every command succeeds.
func NewFakeShell() *FakeShell {
	return &FakeShell{
		ExitCodes:   make(map[string]int),
		StartErrors: make(map[string]error),
	}
}

// Fail makes command exit with code.
func (f *FakeShell) Fail(command string, code int) *FakeShell {
	f.ExitCodes[command] = code
	return f
}

// Run implements types.Shell.
func (f *FakeShell) Run(_ context.Context, command string) (int, error) {
	f.mu.Lock()
	if err, ok := f.StartErrors[command]; ok {
		f.mu.Unlock()
		return -1, err
	}
	f.commands = append(f.commands, command)
	code := f.ExitCodes[command]
	onRun := f.OnRun
	f.mu.Unlock()

	if onRun != nil {
		onRun(command)
	}
	return code, nil
}

// Commands returns the commands run so far, in order.
func (f *FakeShell) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}
