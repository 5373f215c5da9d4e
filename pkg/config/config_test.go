package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/shiftgraph/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[vocabulary]
punctuation = "PU"

[runner]
concurrency = 8
freeze = true

[log]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Vocabulary.Punctuation != "PU" || cfg.Vocabulary.Terminal != "Terminal" {
		t.Errorf("Vocabulary = %+v", cfg.Vocabulary)
	}
	if cfg.Runner.Concurrency != 8 || !cfg.Runner.Freeze || cfg.Runner.MaxActions == 0 {
		t.Errorf("Runner = %+v", cfg.Runner)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "[runner\n", errors.ErrCodeInvalidFormat},
		{"unknown key", "[runner]\nworkers = 2\n", errors.ErrCodeInvalidFormat},
		{"shared tag", "[vocabulary]\nlink_relation = \"LA\"\n", errors.ErrCodeInvalidInput},
		{"bad level", "[log]\nlevel = \"loud\"\n", errors.ErrCodeInvalidInput},
		{"negative concurrency", "[runner]\nconcurrency = -1\n", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeInvalidPath)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-config", AppName, "config.toml"); path != want {
		t.Errorf("Path() = %q, want %q", path, want)
	}
}

func TestLoadDefaultWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("LoadDefault() = %+v, want defaults", cfg)
	}
}
