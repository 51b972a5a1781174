// SPDX-License-Identifier: MPL-2.0

// Package dockerfile generates the fixed container-image definition and
// parses the optional ds.rc command file.
//
// The Dockerfile content is a fixed multi-stage recipe (base OS, package
// layer, user account matching the host uid, locale setup, tooling layer,
// shell entrypoint). Its four ARG placeholders — USER, UID, ROOTDIR and
// WORKDIR — are substituted by the container engine at image-build time via
// --build-arg, never at generation time.
package dockerfile

import (
	_ "embed"
	"fmt"
	"os"
)

// Build-argument names matched by the ARG declarations in the template.
const (
	ArgUser    = "USER"
	ArgUID     = "UID"
	ArgRootDir = "ROOTDIR"
	ArgWorkDir = "WORKDIR"
)

//go:embed template.dockerfile
var template string

// Content returns the canonical definition-file text.
func Content() string {
	return template
}

// Write replaces any file at path with the canonical definition-file text.
// A pre-existing file is removed first (no error if absent); there is no
// merge or diff logic. I/O failures (missing parent directory, unwritable
// path) surface to the caller.
func Write(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing definition file %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
		return fmt.Errorf("write definition file %s: %w", path, err)
	}
	return nil
}
