// SPDX-License-Identifier: MPL-2.0

// Package container provides an abstraction layer for container runtimes
// (Docker/Podman) and the invocation plan ds executes against them.
package container

import "context"

// Engine defines the interface for container CLI operations.
type Engine interface {
	// Name returns the engine name (docker or podman)
	Name() string
	// BinaryPath returns the engine binary path (or bare name when the
	// binary is not installed, so constructed commands stay renderable)
	BinaryPath() string
	// Available checks if the engine is available on the system
	Available() bool
	// Version returns the engine version
	Version(ctx context.Context) (string, error)

	// BuildArgs constructs arguments for an image build command
	BuildArgs(opts BuildOptions) []string
	// RunArgs constructs arguments for a container run command
	RunArgs(opts RunOptions) []string
}

// BuildOptions contains options for building an image.
type BuildOptions struct {
	// ContextDir is the build context directory
	ContextDir string
	// Dockerfile is the path to the Dockerfile (relative to ContextDir)
	Dockerfile string
	// Tag is the image tag
	Tag string
	// BuildArgs are build-time variables
	BuildArgs map[string]string
}

// RunOptions contains options for running a container.
type RunOptions struct {
	// Image is the image to run
	Image string
	// Command is the command to run (empty for the image entrypoint)
	Command []string
	// WorkDir is the working directory inside the container
	WorkDir string
	// User is the user identity inside the container
	User string
	// Volumes are volume mounts in "host:container" format
	Volumes []string
	// Remove automatically removes the container after exit
	Remove bool
	// Interactive keeps stdin open
	Interactive bool
	// TTY allocates a pseudo-TTY
	TTY bool
}

// EngineType identifies the container engine type.
type EngineType string

const (
	// EngineTypeAuto probes for the first responding engine.
	EngineTypeAuto EngineType = ""
	// EngineTypeDocker uses the Docker CLI.
	EngineTypeDocker EngineType = "docker"
	// EngineTypePodman uses the Podman CLI.
	EngineTypePodman EngineType = "podman"
)
