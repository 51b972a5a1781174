// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
)

// DockerEngine implements the Engine interface using the Docker CLI.
// It embeds BaseCLIEngine for common CLI operations.
type DockerEngine struct {
	*BaseCLIEngine
}

// NewDockerEngine creates a new Docker engine.
func NewDockerEngine(opts ...BaseCLIEngineOption) *DockerEngine {
	return &DockerEngine{
		BaseCLIEngine: NewBaseCLIEngine(string(EngineTypeDocker), opts...),
	}
}

// Available checks if Docker is available.
func (e *DockerEngine) Available() bool {
	_, err := e.probeVersion(context.Background(), "{{.Server.Version}}")
	return err == nil
}

// Version returns the Docker server version.
func (e *DockerEngine) Version(ctx context.Context) (string, error) {
	return e.probeVersion(ctx, "{{.Server.Version}}")
}
