// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Engine != ContainerEngineAuto {
		t.Errorf("Engine = %q, want auto", cfg.Engine)
	}
	if cfg.ImageTag != "dockershell:latest" {
		t.Errorf("ImageTag = %q, want %q", cfg.ImageTag, "dockershell:latest")
	}
	if cfg.Verbosity != 0 {
		t.Errorf("Verbosity = %d, want 0", cfg.Verbosity)
	}
	if len(cfg.Volumes) != 0 {
		t.Errorf("Volumes = %v, want empty", cfg.Volumes)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, `
engine = "podman"
image_tag = "sandbox:dev"
verbosity = 1
volumes = ["/var/cache:/var/cache"]
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Engine != ContainerEnginePodman {
		t.Errorf("Engine = %q, want podman", cfg.Engine)
	}
	if cfg.ImageTag != "sandbox:dev" {
		t.Errorf("ImageTag = %q, want %q", cfg.ImageTag, "sandbox:dev")
	}
	if cfg.Verbosity != 1 {
		t.Errorf("Verbosity = %d, want 1", cfg.Verbosity)
	}
	if want := []string{"/var/cache:/var/cache"}; !slices.Equal(cfg.Volumes, want) {
		t.Errorf("Volumes = %v, want %v", cfg.Volumes, want)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, `engine = "docker"`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Engine != ContainerEngineDocker {
		t.Errorf("Engine = %q, want docker", cfg.Engine)
	}
	if cfg.ImageTag != "dockershell:latest" {
		t.Errorf("ImageTag = %q, want default tag", cfg.ImageTag)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte(`image_tag = "custom:latest"`), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ImageTag != "custom:latest" {
		t.Errorf("ImageTag = %q, want %q", cfg.ImageTag, "custom:latest")
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "missing.toml"),
	})
	if err == nil {
		t.Fatal("Load() with missing explicit file succeeded, want error")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Load() error = %v, want mention of missing file", err)
	}
}

func TestLoadRejectsInvalidEngine(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, `engine = "rkt"`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if !errors.Is(err, ErrInvalidContainerEngine) {
		t.Errorf("Load() error = %v, want ErrInvalidContainerEngine", err)
	}
}

func TestLoadRejectsInvalidVolume(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, `volumes = ["no-separator"]`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if !errors.Is(err, ErrInvalidVolumeMount) {
		t.Errorf("Load() error = %v, want ErrInvalidVolumeMount", err)
	}
}

func TestLoadCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "defaults valid",
			cfg:  *DefaultConfig(),
		},
		{
			name: "podman with volumes",
			cfg: Config{
				Engine:   ContainerEnginePodman,
				ImageTag: "dockershell:latest",
				Volumes:  []string{"/a:/a", "/b:/c:ro"},
			},
		},
		{
			name:    "unknown engine",
			cfg:     Config{Engine: "lxc", ImageTag: "dockershell:latest"},
			wantErr: true,
		},
		{
			name:    "blank image tag",
			cfg:     Config{ImageTag: "  "},
			wantErr: true,
		},
		{
			name:    "volume missing container path",
			cfg:     Config{ImageTag: "dockershell:latest", Volumes: []string{"/a:"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnsureConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "ds")
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	if err := EnsureConfigDir(); err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("config dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("config dir path %q is not a directory", dir)
	}

	// Idempotent on an existing directory.
	if err := EnsureConfigDir(); err != nil {
		t.Errorf("EnsureConfigDir() on existing dir error = %v", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	path, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if path != filepath.Join(dir, "config.toml") {
		t.Errorf("CreateDefaultConfig() path = %q, want it under the config dir", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read generated config: %v", err)
	}
	if !strings.Contains(string(data), "dockershell:latest") {
		t.Errorf("generated config missing default image tag:\n%s", data)
	}

	// A second call must not clobber the existing file.
	if err := os.WriteFile(path, []byte(`image_tag = "keep:me"`), 0o644); err != nil {
		t.Fatalf("failed to modify config: %v", err)
	}
	if _, err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() second call error = %v", err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to re-read config: %v", err)
	}
	if !strings.Contains(string(data), "keep:me") {
		t.Error("CreateDefaultConfig() overwrote an existing config file")
	}
}

func TestGenerateTOMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Engine:   ContainerEngineDocker,
		ImageTag: "dockershell:latest",
		Volumes:  []string{"/var/cache:/var/cache"},
	}

	content, err := GenerateTOML(cfg)
	if err != nil {
		t.Fatalf("GenerateTOML() error = %v", err)
	}
	if !strings.HasPrefix(content, "# dockershell configuration file") {
		t.Errorf("GenerateTOML() missing header:\n%s", content)
	}

	dir := t.TempDir()
	writeConfigFile(t, dir, content)

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() of generated config error = %v", err)
	}
	if loaded.Engine != cfg.Engine || loaded.ImageTag != cfg.ImageTag {
		t.Errorf("round trip = %+v, want %+v", loaded, cfg)
	}
}
