// SPDX-License-Identifier: MPL-2.0

package container

import (
	"path/filepath"

	"dockershell-cli/internal/dockerfile"
)

type (
	// LaunchSpec carries everything needed to build the sandbox image and
	// start a session inside it: host identity, the directories to expose,
	// and the command to run. It is assembled once by the CLI layer and
	// translated into Actions here.
	LaunchSpec struct {
		// User and UID identify the host account mirrored inside the image.
		User string
		UID  string
		// Home is the host home directory, mounted at the same path.
		Home string
		// RootDir is the build root whose Dockerfile defines the image.
		RootDir string
		// WorkDir is the directory the session starts in, mounted at the
		// same path.
		WorkDir string
		// DockerfilePath is the definition file passed to the build.
		DockerfilePath string
		// Image is the tag built and run, e.g. "dockershell:latest".
		Image string
		// ExtraVolumes are additional host:container mounts from config.
		ExtraVolumes []string
		// Command overrides the image's default command when non-empty.
		Command []string
		// Quiet suppresses build output.
		Quiet bool
	}
)

// BuildInvocation constructs the image-build action for the spec. The build
// context is the Dockerfile's directory, passed as an absolute path so the
// rendered command line is correct regardless of the caller's cwd.
func BuildInvocation(engine Engine, spec LaunchSpec) Action {
	contextDir := filepath.Dir(spec.DockerfilePath)
	argv := append([]string{engine.BinaryPath()}, engine.BuildArgs(BuildOptions{
		ContextDir: contextDir,
		Dockerfile: spec.DockerfilePath,
		Tag:        spec.Image,
		BuildArgs: map[string]string{
			dockerfile.ArgUser:    spec.User,
			dockerfile.ArgUID:     spec.UID,
			dockerfile.ArgRootDir: spec.RootDir,
			dockerfile.ArgWorkDir: spec.WorkDir,
		},
	})...)

	return Action{
		Kind:  ActionSpawnWait,
		Argv:  argv,
		Dir:   contextDir,
		Quiet: spec.Quiet,
	}
}

// RunInvocation constructs the session-start action for the spec: an
// interactive, self-removing container with the home and working
// directories mounted at their host paths, running as the host user.
func RunInvocation(engine Engine, spec LaunchSpec) Action {
	volumes := []string{
		spec.Home + ":" + spec.Home,
		spec.WorkDir + ":" + spec.WorkDir,
	}
	volumes = append(volumes, spec.ExtraVolumes...)

	argv := append([]string{engine.BinaryPath()}, engine.RunArgs(RunOptions{
		Image:       spec.Image,
		Command:     spec.Command,
		WorkDir:     spec.WorkDir,
		User:        spec.User,
		Volumes:     volumes,
		Remove:      true,
		Interactive: true,
		TTY:         true,
	})...)

	return Action{
		Kind: ActionExecReplace,
		Argv: argv,
		Dir:  spec.WorkDir,
	}
}
