// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"fmt"
	"maps"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// BaseCLIEngineOption configures a BaseCLIEngine.
	BaseCLIEngineOption func(*BaseCLIEngine)

	// BaseCLIEngine provides common implementation for CLI-based container
	// engines. Docker and Podman engines embed this struct; the argument
	// builders and probe helpers are identical across both.
	BaseCLIEngine struct {
		name        string
		binaryPath  string
		execCommand ExecCommandFunc
	}
)

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.execCommand = fn
	}
}

// WithBinaryPath overrides the resolved engine binary path. Used by tests.
func WithBinaryPath(path string) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.binaryPath = path
	}
}

// NewBaseCLIEngine creates a base engine for the named binary. The binary is
// resolved via PATH lookup; when absent, the bare name is kept so dry-run and
// script modes can still render commands on machines without the engine.
func NewBaseCLIEngine(name string, opts ...BaseCLIEngineOption) *BaseCLIEngine {
	path, err := exec.LookPath(name)
	if err != nil {
		path = name
	}
	e := &BaseCLIEngine{
		name:        name,
		binaryPath:  path,
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the engine name.
func (e *BaseCLIEngine) Name() string {
	return e.name
}

// BinaryPath returns the path to the container engine binary.
func (e *BaseCLIEngine) BinaryPath() string {
	return e.binaryPath
}

// BuildArgs constructs arguments for a container build command.
// Build-time variables are emitted in sorted key order so the argument
// vector is deterministic for a given option set.
//
// Generated command: <binary> build [options] <context>
func (e *BaseCLIEngine) BuildArgs(opts BuildOptions) []string {
	args := []string{"build"}

	if opts.Dockerfile != "" {
		// Resolve the Dockerfile path relative to the context directory.
		dockerfilePath := opts.Dockerfile
		if !filepath.IsAbs(dockerfilePath) && opts.ContextDir != "" {
			dockerfilePath = filepath.Join(opts.ContextDir, dockerfilePath)
		}
		args = append(args, "-f", dockerfilePath)
	}

	if opts.Tag != "" {
		args = append(args, "-t", opts.Tag)
	}

	for _, k := range slices.Sorted(maps.Keys(opts.BuildArgs)) {
		args = append(args, "--build-arg", fmt.Sprintf("%s=%s", k, opts.BuildArgs[k]))
	}

	args = append(args, opts.ContextDir)

	return args
}

// RunArgs constructs arguments for a container run command.
//
// Generated command: <binary> run [options] <image> [command...]
func (e *BaseCLIEngine) RunArgs(opts RunOptions) []string {
	args := []string{"run"}

	if opts.Remove {
		args = append(args, "--rm")
	}

	if opts.Interactive {
		args = append(args, "-i")
	}

	if opts.TTY {
		args = append(args, "-t")
	}

	if opts.WorkDir != "" {
		args = append(args, "--workdir", opts.WorkDir)
	}

	if opts.User != "" {
		args = append(args, "-u", opts.User)
	}

	for _, v := range opts.Volumes {
		args = append(args, "-v", v)
	}

	args = append(args, opts.Image)
	args = append(args, opts.Command...)

	return args
}

// probeVersion runs the engine's version subcommand with the given format
// template and returns its trimmed output.
func (e *BaseCLIEngine) probeVersion(ctx context.Context, format string) (string, error) {
	cmd := e.execCommand(ctx, e.binaryPath, "version", "--format", format)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("command %s version failed: %w", e.binaryPath, err)
	}
	return strings.TrimSpace(string(out)), nil
}
