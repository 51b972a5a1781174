// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// gitExitNotARepository is the exit status git uses for "fatal: not a git
// repository" from rev-parse. Any other non-zero status means a broken
// toolchain rather than "no repository present".
const gitExitNotARepository = 128

// ErrNotARepository is returned by GitRunner.TopLevel when the directory is
// not inside any git work tree.
var ErrNotARepository = errors.New("not inside a git repository")

type (
	// GitRunner queries the enclosing git repository. The default
	// implementation shells out to the git CLI; tests substitute a fake.
	GitRunner interface {
		// TopLevel returns the absolute path of the repository top-level
		// directory enclosing dir. Returns ErrNotARepository (possibly
		// wrapped) when dir is not under version control.
		TopLevel(ctx context.Context, dir string) (string, error)
	}

	// Locator discovers the build root and definition file paths.
	Locator struct {
		git    GitRunner
		logger *log.Logger
	}

	// LocatorOption configures a Locator.
	LocatorOption func(*Locator)

	cliGitRunner struct{}
)

// WithGitRunner substitutes the git query implementation. Used by tests.
func WithGitRunner(g GitRunner) LocatorOption {
	return func(l *Locator) {
		l.git = g
	}
}

// WithLogger sets the logger used for discovery debug traces.
func WithLogger(logger *log.Logger) LocatorOption {
	return func(l *Locator) {
		l.logger = logger
	}
}

// NewLocator creates a Locator backed by the git CLI.
func NewLocator(opts ...LocatorOption) *Locator {
	l := &Locator{
		git:    cliGitRunner{},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// TopLevel implements GitRunner via `git rev-parse --show-toplevel`.
func (cliGitRunner) TopLevel(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == gitExitNotARepository {
			return "", fmt.Errorf("%w: %s", ErrNotARepository, dir)
		}
		return "", fmt.Errorf("git rev-parse --show-toplevel: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// BuildRoot returns the directory anchoring the containerized environment:
// the git top-level directory enclosing startDir, or startDir itself when no
// repository encloses it. The result is canonicalized (absolute, symlinks
// resolved). Only the "not a repository" git failure is recovered; any other
// git error propagates to the caller.
func (l *Locator) BuildRoot(ctx context.Context, startDir string) (string, error) {
	top, err := l.git.TopLevel(ctx, startDir)
	if err != nil {
		if errors.Is(err, ErrNotARepository) {
			l.logger.Debug("no git repository found, using current directory", "dir", startDir)
			return Canonicalize(startDir)
		}
		return "", fmt.Errorf("locate build root: %w", err)
	}

	l.logger.Debug("git top-level directory found", "root", top)
	return Canonicalize(top)
}

// Canonicalize makes path absolute and resolves symlinks.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path for %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolving symlinks for %s: %w", abs, err)
	}
	return resolved, nil
}
