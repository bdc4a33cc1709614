package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	if cfg.Port != 48800 {
		t.Errorf("Port = %d, want 48800", cfg.Port)
	}
	if cfg.Cap != 5 {
		t.Errorf("Cap = %d, want 5", cfg.Cap)
	}
	if cfg.TTLSeconds != 30 {
		t.Errorf("TTLSeconds = %d, want 30", cfg.TTLSeconds)
	}
	if cfg.RecvTimeoutMillis != 1 {
		t.Errorf("RecvTimeoutMillis = %d, want 1", cfg.RecvTimeoutMillis)
	}
	if cfg.LogFile != "" {
		t.Errorf("LogFile = %q, want empty", cfg.LogFile)
	}
	if cfg.LogRotateBytes != 5*1024*1024 {
		t.Errorf("LogRotateBytes = %d, want %d", cfg.LogRotateBytes, 5*1024*1024)
	}
}

func TestLoadWithEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("Load(\"\") = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadPartialFileOverridesOnlyMentionedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coordinator.yaml")
	if err := os.WriteFile(path, []byte("port: 9999\ndebug: true\n"), 0644); err != nil {
		t.Fatalf("failed writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Port)
	}
	if !cfg.Debug {
		t.Errorf("Debug = false, want true")
	}
	if cfg.Cap != 5 {
		t.Errorf("Cap = %d, want default 5 (untouched by partial file)", cfg.Cap)
	}
	if cfg.TTLSeconds != 30 {
		t.Errorf("TTLSeconds = %d, want default 30 (untouched by partial file)", cfg.TTLSeconds)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a nonexistent config file")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [this is not an int\n"), 0644); err != nil {
		t.Fatalf("failed writing fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for malformed YAML")
	}
}
