// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
)

func TestDispatchEmptyArgv(t *testing.T) {
	t.Parallel()

	d := NewProcessDispatcher()
	if err := d.Dispatch(context.Background(), Action{}); err == nil {
		t.Error("Dispatch() with empty argv succeeded, want error")
	}
}

func TestDispatchSpawnWait(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX shell utilities")
	}

	var stdout, stderr bytes.Buffer
	d := NewProcessDispatcher(WithStdio(strings.NewReader(""), &stdout, &stderr))

	action := Action{Kind: ActionSpawnWait, Argv: []string{"echo", "hello"}}
	if err := d.Dispatch(context.Background(), action); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "hello" {
		t.Errorf("stdout = %q, want %q", got, "hello")
	}
}

func TestDispatchSpawnWaitQuiet(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX shell utilities")
	}

	var stdout bytes.Buffer
	d := NewProcessDispatcher(WithStdio(strings.NewReader(""), &stdout, &stdout))

	action := Action{Kind: ActionSpawnWait, Argv: []string{"echo", "hidden"}, Quiet: true}
	if err := d.Dispatch(context.Background(), action); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("quiet dispatch wrote %q, want no output", stdout.String())
	}
}

func TestDispatchSpawnWaitExitCode(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX shell utilities")
	}

	d := NewProcessDispatcher(WithStdio(strings.NewReader(""), new(bytes.Buffer), new(bytes.Buffer)))

	action := Action{Kind: ActionSpawnWait, Argv: []string{"sh", "-c", "exit 3"}}
	err := d.Dispatch(context.Background(), action)

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Dispatch() error = %v, want *CommandError", err)
	}
	if cmdErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", cmdErr.ExitCode)
	}
}

func TestDispatchRecordsExecCommand(t *testing.T) {
	t.Parallel()

	var gotName string
	var gotArgs []string
	fn := func(ctx context.Context, name string, arg ...string) *exec.Cmd {
		gotName = name
		gotArgs = arg
		return exec.CommandContext(ctx, "true")
	}

	d := NewProcessDispatcher(WithDispatcherExecCommand(fn))
	action := Action{Kind: ActionSpawnWait, Argv: []string{"docker", "build", "."}}
	if err := d.Dispatch(context.Background(), action); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if gotName != "docker" {
		t.Errorf("exec name = %q, want %q", gotName, "docker")
	}
	if len(gotArgs) != 2 || gotArgs[0] != "build" {
		t.Errorf("exec args = %v, want [build .]", gotArgs)
	}
}

func TestCommandErrorMessage(t *testing.T) {
	t.Parallel()

	err := &CommandError{Argv: []string{"docker", "build"}, ExitCode: 1}
	want := `command "docker build" exited with status 1`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestActionKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind ActionKind
		want string
	}{
		{ActionSpawnWait, "spawn"},
		{ActionExecReplace, "exec"},
		{ActionKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ActionKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
