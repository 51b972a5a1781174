// SPDX-License-Identifier: MPL-2.0

//go:build unix

package container

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// replaceProcess swaps the current process image for the action's command
// via execve, after moving into the action's working directory. On success
// it does not return; the container session takes over the terminal.
func replaceProcess(action Action) error {
	binary, err := exec.LookPath(action.Argv[0])
	if err != nil {
		return fmt.Errorf("locating %s: %w", action.Argv[0], err)
	}
	if action.Dir != "" {
		if err := os.Chdir(action.Dir); err != nil {
			return fmt.Errorf("changing to %s: %w", action.Dir, err)
		}
	}
	if err := unix.Exec(binary, action.Argv, os.Environ()); err != nil {
		return fmt.Errorf("replacing process with %s: %w", binary, err)
	}
	return nil
}
