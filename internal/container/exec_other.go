// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package container

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// replaceProcess approximates execve on platforms without it: spawn the
// command with inherited streams, wait, and exit with the child's status.
func replaceProcess(action Action) error {
	cmd := exec.Command(action.Argv[0], action.Argv[1:]...) //nolint:gosec
	cmd.Dir = action.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &CommandError{Argv: action.Argv, ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("command %s failed to start: %w", action.Argv[0], err)
	}
	return nil
}
