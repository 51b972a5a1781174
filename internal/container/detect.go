// SPDX-License-Identifier: MPL-2.0

package container

// Pin returns the engine for a pinned preference without probing anything.
// An empty preference defaults to Docker. Preview callers only need the
// argv builders; callers that intend to execute must check Available().
func Pin(preference EngineType, opts ...BaseCLIEngineOption) Engine {
	if preference == EngineTypePodman {
		return NewPodmanEngine(opts...)
	}
	return NewDockerEngine(opts...)
}

// Detect returns the engine for the given preference. A pinned preference is
// honored as-is; an empty preference probes for the first responding engine,
// Docker first, falling back to Docker when neither responds. Callers must
// still check Available() before executing.
func Detect(preference EngineType, opts ...BaseCLIEngineOption) Engine {
	if preference != EngineTypeAuto {
		return Pin(preference, opts...)
	}

	docker := NewDockerEngine(opts...)
	if docker.Available() {
		return docker
	}
	podman := NewPodmanEngine(opts...)
	if podman.Available() {
		return podman
	}
	return docker
}
