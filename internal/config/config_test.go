package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leadkey.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	if cfg != want {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
bindings = "/tmp/my-bindings.json"
debug = true
debug_file = "/tmp/leadkey.log"
max_log_files = 5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Bindings != "/tmp/my-bindings.json" {
		t.Errorf("Bindings = %q", cfg.Bindings)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
	if cfg.DebugFile != "/tmp/leadkey.log" {
		t.Errorf("DebugFile = %q", cfg.DebugFile)
	}
	if cfg.MaxLogFiles != 5 {
		t.Errorf("MaxLogFiles = %d, want 5", cfg.MaxLogFiles)
	}
}

func TestLoadPartialConfigFillsDefaults(t *testing.T) {
	path := writeConfig(t, `debug = true`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
	if cfg.Bindings == "" {
		t.Error("Bindings = \"\", want the default path")
	}
	if cfg.MaxLogFiles != 20 {
		t.Errorf("MaxLogFiles = %d, want 20", cfg.MaxLogFiles)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := writeConfig(t, `debug = {{nope`)

	cfg, err := Load(path)
	if err == nil {
		t.Fatal("Load() error = nil, want parse error")
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v on parse error, want defaults", cfg)
	}
}
