// SPDX-License-Identifier: MPL-2.0

package container

import (
	"slices"
	"testing"
)

func testLaunchSpec() LaunchSpec {
	return LaunchSpec{
		User:           "bob",
		UID:            "1000",
		Home:           "/home/bob",
		RootDir:        "/repo",
		WorkDir:        "/repo/sub",
		DockerfilePath: "/repo/Dockerfile",
		Image:          "dockershell:latest",
	}
}

func TestBuildInvocation(t *testing.T) {
	t.Parallel()

	engine := NewDockerEngine(WithBinaryPath("/usr/bin/docker"))
	action := BuildInvocation(engine, testLaunchSpec())

	if action.Kind != ActionSpawnWait {
		t.Errorf("Kind = %v, want %v", action.Kind, ActionSpawnWait)
	}
	if action.Dir != "/repo" {
		t.Errorf("Dir = %q, want %q", action.Dir, "/repo")
	}

	want := []string{
		"/usr/bin/docker", "build",
		"-f", "/repo/Dockerfile",
		"-t", "dockershell:latest",
		"--build-arg", "ROOTDIR=/repo",
		"--build-arg", "UID=1000",
		"--build-arg", "USER=bob",
		"--build-arg", "WORKDIR=/repo/sub",
		"/repo",
	}
	if !slices.Equal(action.Argv, want) {
		t.Errorf("Argv = %v, want %v", action.Argv, want)
	}
}

func TestBuildInvocationQuiet(t *testing.T) {
	t.Parallel()

	spec := testLaunchSpec()
	spec.Quiet = true

	action := BuildInvocation(NewDockerEngine(WithBinaryPath("docker")), spec)
	if !action.Quiet {
		t.Error("Quiet = false, want true")
	}
}

func TestRunInvocation(t *testing.T) {
	t.Parallel()

	engine := NewDockerEngine(WithBinaryPath("/usr/bin/docker"))
	action := RunInvocation(engine, testLaunchSpec())

	if action.Kind != ActionExecReplace {
		t.Errorf("Kind = %v, want %v", action.Kind, ActionExecReplace)
	}
	if action.Dir != "/repo/sub" {
		t.Errorf("Dir = %q, want %q", action.Dir, "/repo/sub")
	}

	want := []string{
		"/usr/bin/docker", "run", "--rm", "-i", "-t",
		"--workdir", "/repo/sub",
		"-u", "bob",
		"-v", "/home/bob:/home/bob",
		"-v", "/repo/sub:/repo/sub",
		"dockershell:latest",
	}
	if !slices.Equal(action.Argv, want) {
		t.Errorf("Argv = %v, want %v", action.Argv, want)
	}
}

func TestRunInvocationCommandAndVolumes(t *testing.T) {
	t.Parallel()

	spec := testLaunchSpec()
	spec.Command = []string{"make", "test"}
	spec.ExtraVolumes = []string{"/var/cache:/var/cache"}

	action := RunInvocation(NewDockerEngine(WithBinaryPath("docker")), spec)

	wantTail := []string{"dockershell:latest", "make", "test"}
	if got := action.Argv[len(action.Argv)-3:]; !slices.Equal(got, wantTail) {
		t.Errorf("Argv tail = %v, want %v", got, wantTail)
	}
	if !slices.Contains(action.Argv, "/var/cache:/var/cache") {
		t.Errorf("Argv = %v, missing extra volume mount", action.Argv)
	}
}
