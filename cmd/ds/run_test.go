// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"testing"

	"github.com/charmbracelet/log"

	"dockershell-cli/internal/config"
)

func TestResolveLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		verbose    int
		quiet      int
		configured int
		want       log.Level
	}{
		{name: "default is warn", want: log.WarnLevel},
		{name: "one v gives info", verbose: 1, want: log.InfoLevel},
		{name: "two v gives debug", verbose: 2, want: log.DebugLevel},
		{name: "v overflow clamps at debug", verbose: 5, want: log.DebugLevel},
		{name: "one q gives error", quiet: 1, want: log.ErrorLevel},
		{name: "two q gives fatal", quiet: 2, want: log.FatalLevel},
		{name: "q overflow clamps at fatal", quiet: 9, want: log.FatalLevel},
		{name: "v and q cancel out", verbose: 2, quiet: 2, want: log.WarnLevel},
		{name: "config verbosity acts as baseline", configured: 1, want: log.InfoLevel},
		{name: "quiet beats config baseline", configured: 1, quiet: 2, want: log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveLogLevel(tt.verbose, tt.quiet, tt.configured)
			if got != tt.want {
				t.Errorf("resolveLogLevel(%d, %d, %d) = %v, want %v", tt.verbose, tt.quiet, tt.configured, got, tt.want)
			}
		})
	}
}

func TestResolveToggle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		positive bool
		negative bool
		want     bool
	}{
		{name: "neither", want: false},
		{name: "positive only", positive: true, want: true},
		{name: "negative only", negative: true, want: false},
		{name: "negative wins over positive", positive: true, negative: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveToggle(tt.positive, tt.negative); got != tt.want {
				t.Errorf("resolveToggle(%v, %v) = %v, want %v", tt.positive, tt.negative, got, tt.want)
			}
		})
	}
}

func TestResolveEngineChoice(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		cfg     config.ContainerEngine
		want    config.ContainerEngine
		wantErr bool
	}{
		{name: "defaults to auto", want: config.ContainerEngineAuto},
		{name: "config engine applies", cfg: config.ContainerEnginePodman, want: config.ContainerEnginePodman},
		{name: "flag beats config", flag: "docker", cfg: config.ContainerEnginePodman, want: config.ContainerEngineDocker},
		{name: "invalid flag rejected", flag: "rkt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := engineFlag
			engineFlag = tt.flag
			defer func() { engineFlag = prev }()

			got, err := resolveEngineChoice(&config.Config{Engine: tt.cfg, ImageTag: "dockershell:latest"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveEngineChoice() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("resolveEngineChoice() = %q, want %q", got, tt.want)
			}
		})
	}
}
