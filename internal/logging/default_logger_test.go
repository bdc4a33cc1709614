package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRotatingFileLoggerWritesLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coordinator.log")

	l, err := NewRotatingFileLogger(path, 0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer l.Close()

	l.Infof("hello %s", "world")
	l.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed reading log file: %v", err)
	}
	if !strings.Contains(string(data), "[INFO]: hello world") {
		t.Fatalf("log file contents %q missing expected line", data)
	}
}

func TestRotatingFileLoggerRotatesPastThreshold(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coordinator.log")
	oldPath := filepath.Join(dir, "old_coordinator.log")

	l, err := NewRotatingFileLogger(path, 64, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer l.Close()

	for i := 0; i < 20; i++ {
		l.Infof("padding line number %d to grow the file past the threshold", i)
	}

	if _, err := os.Stat(oldPath); err != nil {
		t.Fatalf("expected %s to exist after crossing the rotation threshold: %v", oldPath, err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected a fresh log file to exist after rotation: %v", err)
	}
}

func TestRotatingFileLoggerDebugSuppressedByDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coordinator.log")

	l, err := NewRotatingFileLogger(path, 0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer l.Close()

	l.Debug("should not appear")
	l.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed reading log file: %v", err)
	}
	if strings.Contains(string(data), "should not appear") {
		t.Fatalf("debug line written despite debug being off: %q", data)
	}

	l2, err := NewRotatingFileLogger(path, 0, false)
	if err != nil {
		t.Fatalf("unexpected error reopening: %v", err)
	}
	defer l2.Close()
	l2.ToggleDebug(true)
	l2.Debug("now it should appear")
	l2.Close()

	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed reading log file: %v", err)
	}
	if !strings.Contains(string(data), "now it should appear") {
		t.Fatalf("debug line missing after ToggleDebug(true): %q", data)
	}
}

func TestNewStderrLoggerImplementsLoggerInterface(t *testing.T) {
	l := NewStderrLogger()
	l.ToggleDebug(true)
	// Exercise every level; none of these should panic, and debug output
	// must actually be enabled.
	l.Info("info")
	l.Infof("info %d", 1)
	l.Warn("warn")
	l.Warnf("warn %d", 1)
	l.Error("error")
	l.Errorf("error %d", 1)
	l.Debug("debug")
	l.Debugf("debug %d", 1)
}
