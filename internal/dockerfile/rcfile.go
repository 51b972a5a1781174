// SPDX-License-Identifier: MPL-2.0

package dockerfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// ReadRCCommand returns the default in-container command declared in the
// ds.rc file at path: the first line that is neither blank nor a comment,
// split into tokens with shell word rules. Returns nil tokens (and no error)
// when the file does not exist or declares no command.
func ReadRCCommand(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open command file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields, err := shell.Fields(line, nil)
		if err != nil {
			return nil, fmt.Errorf("parse command file %s: %w", path, err)
		}
		return fields, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read command file %s: %w", path, err)
	}
	return nil, nil
}
