// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ContainerEngineAuto selects the first available engine at startup.
	ContainerEngineAuto ContainerEngine = ""
	// ContainerEngineDocker uses Docker as the container runtime.
	ContainerEngineDocker ContainerEngine = "docker"
	// ContainerEnginePodman uses Podman as the container runtime.
	ContainerEnginePodman ContainerEngine = "podman"
)

var (
	// ErrInvalidContainerEngine is returned when a ContainerEngine value is not recognized.
	ErrInvalidContainerEngine = errors.New("invalid container engine")
	// ErrInvalidVolumeMount is returned when a volume entry is not host:container form.
	ErrInvalidVolumeMount = errors.New("invalid volume mount")
)

type (
	// ContainerEngine specifies which container runtime to use.
	ContainerEngine string

	// InvalidContainerEngineError is returned when a ContainerEngine value is
	// not recognized. It wraps ErrInvalidContainerEngine for errors.Is().
	InvalidContainerEngineError struct {
		Value ContainerEngine
	}

	// InvalidVolumeMountError is returned when a configured volume entry is
	// malformed. It wraps ErrInvalidVolumeMount for errors.Is().
	InvalidVolumeMountError struct {
		Value string
	}

	// Config is the dockershell application configuration.
	Config struct {
		// Engine selects the container runtime ("docker", "podman", or
		// empty for auto-detection).
		Engine ContainerEngine `mapstructure:"engine" toml:"engine"`
		// ImageTag is the tag the sandbox image is built and run under.
		ImageTag string `mapstructure:"image_tag" toml:"image_tag"`
		// Verbosity adjusts the default log level before flag counting:
		// positive values are more verbose, negative more quiet.
		Verbosity int `mapstructure:"verbosity" toml:"verbosity"`
		// Volumes are extra host:container mounts added to every session.
		Volumes []string `mapstructure:"volumes" toml:"volumes"`
	}
)

// Error implements the error interface.
func (e *InvalidContainerEngineError) Error() string {
	return fmt.Sprintf("invalid container engine %q (must be %q or %q)",
		e.Value, ContainerEngineDocker, ContainerEnginePodman)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidContainerEngineError) Unwrap() error {
	return ErrInvalidContainerEngine
}

// Validate checks that the engine name is a recognized value.
func (e ContainerEngine) Validate() error {
	switch e {
	case ContainerEngineAuto, ContainerEngineDocker, ContainerEnginePodman:
		return nil
	default:
		return &InvalidContainerEngineError{Value: e}
	}
}

// Error implements the error interface.
func (e *InvalidVolumeMountError) Error() string {
	return fmt.Sprintf("invalid volume mount %q (expected host:container)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidVolumeMountError) Unwrap() error {
	return ErrInvalidVolumeMount
}

// DefaultConfig returns the built-in defaults used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Engine:   ContainerEngineAuto,
		ImageTag: "dockershell:latest",
	}
}

// Validate checks the whole configuration for structural errors.
func (c *Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.ImageTag) == "" {
		return errors.New("image_tag must not be empty")
	}
	for _, vol := range c.Volumes {
		host, container, ok := strings.Cut(vol, ":")
		if !ok || strings.TrimSpace(host) == "" || strings.TrimSpace(container) == "" {
			return &InvalidVolumeMountError{Value: vol}
		}
	}
	return nil
}
