// SPDX-License-Identifier: MPL-2.0

// Package discovery locates the build root and the environment definition
// files for a ds invocation.
//
// The build root is the top-level directory of the enclosing git repository,
// or the starting directory when no repository encloses it. The definition
// file (Dockerfile) and the optional command file (ds.rc) are found by
// walking ancestor directories upward from the starting directory, bounded
// by the build root.
package discovery
