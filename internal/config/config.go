// Package config loads the coordinator's tunables from a YAML file. Every
// field has a sensible default, so a coordinator can start with no config
// file at all.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every coordinator tunable. YAML tags keep the on-disk shape
// approachable for operators.
type Config struct {
	// Port is the single well-known port bound on both UDP and TCP.
	Port int `yaml:"port"`

	// Cap is the maximum number of registrations (live or expired) kept per
	// source IP before the oldest is evicted.
	Cap int `yaml:"cap"`

	// TTLSeconds is the absolute lifetime of a registration entry.
	TTLSeconds int `yaml:"ttl_seconds"`

	// RecvTimeoutMillis bounds how long the reactor blocks on the
	// datagram socket before checking the pending-stream slot.
	RecvTimeoutMillis int `yaml:"recv_timeout_millis"`

	// LogFile is the path log lines are appended to. Empty means
	// stderr-only logging.
	LogFile string `yaml:"log_file"`

	// LogRotateBytes is the size threshold at which LogFile is rotated
	// to an "old_" companion.
	LogRotateBytes int64 `yaml:"log_rotate_bytes"`

	// Debug toggles debug-level log lines.
	Debug bool `yaml:"debug"`
}

// Default returns the configuration used when no file is supplied: port
// 48800, a per-IP cap of 5, a 30 second TTL, a 1ms receive timeout, stderr
// logging, and a 5MiB rotation threshold.
func Default() *Config {
	return &Config{
		Port:              48800,
		Cap:               5,
		TTLSeconds:        30,
		RecvTimeoutMillis: 1,
		LogFile:           "",
		LogRotateBytes:    5 * 1024 * 1024,
		Debug:             false,
	}
}

// Load reads and parses a YAML config file at path, starting from Default()
// so a partial file only overrides the fields it mentions. An empty path
// returns the defaults untouched.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
