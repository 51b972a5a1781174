// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const (
	// ActionSpawnWait spawns a child process and waits for it to exit.
	ActionSpawnWait ActionKind = iota
	// ActionExecReplace replaces the current process image with the
	// command, transferring terminal control to it. It never returns on
	// success.
	ActionExecReplace
)

type (
	// ActionKind distinguishes how an external command is dispatched.
	ActionKind int

	// Action is one fully constructed external command invocation: the
	// complete argument vector (binary first), the working directory to
	// launch in, and the dispatch policy. Actions are value data; nothing
	// executes until a Dispatcher receives one.
	Action struct {
		Kind ActionKind
		Argv []string
		Dir  string
		// Quiet discards child output (SpawnWait only).
		Quiet bool
	}

	// Dispatcher executes Actions. The process-backed implementation is
	// substituted with a recorder in tests and skipped entirely in dry-run
	// and script modes.
	Dispatcher interface {
		Dispatch(ctx context.Context, action Action) error
	}

	// ProcessDispatcher dispatches actions as real OS processes.
	ProcessDispatcher struct {
		execCommand ExecCommandFunc
		stdout      io.Writer
		stderr      io.Writer
		stdin       io.Reader
	}

	// ProcessDispatcherOption configures a ProcessDispatcher.
	ProcessDispatcherOption func(*ProcessDispatcher)

	// CommandError reports a dispatched command that exited non-zero.
	CommandError struct {
		Argv     []string
		ExitCode int
	}
)

// String returns a human-readable kind name.
func (k ActionKind) String() string {
	switch k {
	case ActionSpawnWait:
		return "spawn"
	case ActionExecReplace:
		return "exec"
	default:
		return "unknown"
	}
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", strings.Join(e.Argv, " "), e.ExitCode)
}

// WithDispatcherExecCommand sets a custom exec command function for testing.
func WithDispatcherExecCommand(fn ExecCommandFunc) ProcessDispatcherOption {
	return func(d *ProcessDispatcher) {
		d.execCommand = fn
	}
}

// WithStdio overrides the standard streams wired into spawned children.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) ProcessDispatcherOption {
	return func(d *ProcessDispatcher) {
		d.stdin = stdin
		d.stdout = stdout
		d.stderr = stderr
	}
}

// NewProcessDispatcher creates a Dispatcher backed by real processes,
// inheriting the parent's standard streams by default.
func NewProcessDispatcher(opts ...ProcessDispatcherOption) *ProcessDispatcher {
	d := &ProcessDispatcher{
		execCommand: exec.CommandContext,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		stdin:       os.Stdin,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch executes the action. SpawnWait blocks until the child exits and
// returns a CommandError on non-zero status; output is passed through
// unmodified unless the action is Quiet. ExecReplace hands the process over
// to the command and only returns when the replacement itself fails.
func (d *ProcessDispatcher) Dispatch(ctx context.Context, action Action) error {
	if len(action.Argv) == 0 {
		return errors.New("dispatch: empty argument vector")
	}

	switch action.Kind {
	case ActionExecReplace:
		return replaceProcess(action)
	default:
		return d.spawnWait(ctx, action)
	}
}

func (d *ProcessDispatcher) spawnWait(ctx context.Context, action Action) error {
	cmd := d.execCommand(ctx, action.Argv[0], action.Argv[1:]...)
	cmd.Dir = action.Dir
	cmd.Stdin = d.stdin
	if action.Quiet {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	} else {
		cmd.Stdout = d.stdout
		cmd.Stderr = d.stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &CommandError{Argv: action.Argv, ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("command %s failed to start: %w", action.Argv[0], err)
	}
	return nil
}
