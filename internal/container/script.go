// SPDX-License-Identifier: MPL-2.0

package container

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// RenderScript renders actions as an executable bash script, one command
// per line. Every argument is shell-quoted, so paths and commands with
// spaces or metacharacters survive a round trip through the shell.
func RenderScript(actions []Action) (string, error) {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")

	for _, action := range actions {
		line, err := renderCommandLine(action.Argv)
		if err != nil {
			return "", err
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func renderCommandLine(argv []string) (string, error) {
	quoted := make([]string, 0, len(argv))
	for _, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("quoting argument %q: %w", arg, err)
		}
		quoted = append(quoted, q)
	}
	return strings.Join(quoted, " "), nil
}
