// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"os"
	"path/filepath"
)

const (
	// DefinitionFileName is the container build-definition filename ds
	// searches for and generates.
	DefinitionFileName = "Dockerfile"

	// RCFileName is the optional command file supplying the default
	// in-container command.
	RCFileName = "ds.rc"
)

// DefinitionFilePath returns the path of the Dockerfile governing startDir.
// Ancestor directories are probed from startDir upward (inclusive); the
// nearest existing Dockerfile wins. The walk is bounded by root: reaching it
// ends the search and yields root's candidate path whether or not the file
// exists there. A root that is not an ancestor of startDir is tolerated —
// the walk stops at the filesystem root and falls back to root's candidate.
func (l *Locator) DefinitionFilePath(startDir, root string) (string, error) {
	return l.findUp(startDir, root, DefinitionFileName)
}

// RCFilePath returns the path of the ds.rc file governing startDir, using
// the same bounded upward walk as DefinitionFilePath.
func (l *Locator) RCFilePath(startDir, root string) (string, error) {
	return l.findUp(startDir, root, RCFileName)
}

func (l *Locator) findUp(startDir, root, name string) (string, error) {
	dir, err := Canonicalize(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, name)
		l.logger.Debug("probing for definition file", "candidate", candidate)

		if _, err := os.Stat(candidate); err == nil {
			return Canonicalize(candidate)
		}

		if dir == root {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Filesystem root reached without meeting the build root:
			// root is not an ancestor of startDir. Fall back to root's
			// candidate path rather than walking forever.
			l.logger.Debug("build root is not an ancestor of the start directory",
				"start", startDir, "root", root)
			return filepath.Join(root, name), nil
		}
		dir = parent
	}
}
