package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Backend != "sqlite" || cfg.LogLevel != "info" || cfg.LogFormat != "logfmt" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Fatalf("unexpected shutdown timeout: %v", cfg.ShutdownTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("TASKPAD_BACKEND", "file")
	t.Setenv("TASKPAD_DATA_DIR", "/tmp/pad")
	t.Setenv("TASKPAD_LOG_LEVEL", "debug")
	t.Setenv("TASKPAD_LOG_FORMAT", "json")
	t.Setenv("TASKPAD_LOG_FILE", "/tmp/pad.log")
	t.Setenv("TASKPAD_LOG_TIMESTAMPS", "off")
	t.Setenv("TASKPAD_SHUTDOWN_TIMEOUT_MS", "750")

	cfg := FromEnv(Default())
	if cfg.Backend != "file" || cfg.DataDir != "/tmp/pad" {
		t.Fatalf("unexpected storage config: %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" || cfg.LogFile != "/tmp/pad.log" {
		t.Fatalf("unexpected log config: %+v", cfg)
	}
	if cfg.LogTimestamps {
		t.Fatal("expected timestamps disabled from env")
	}
	if cfg.ShutdownTimeout != 750*time.Millisecond {
		t.Fatalf("unexpected shutdown timeout: %v", cfg.ShutdownTimeout)
	}
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("TASKPAD_LOG_TIMESTAMPS", "sometimes")
	t.Setenv("TASKPAD_SHUTDOWN_TIMEOUT_MS", "-5")

	cfg := FromEnv(Default())
	if !cfg.LogTimestamps || cfg.ShutdownTimeout != 2*time.Second {
		t.Fatalf("garbage env should keep defaults: %+v", cfg)
	}
}

func TestLoadFileOverlaysBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "backend = \"memory\"\nlog_level = \"warn\"\nshutdown_timeout = \"5s\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(Default(), path, true)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Backend != "memory" || cfg.LogLevel != "warn" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.LogFormat != "logfmt" {
		t.Fatalf("unset keys should keep base values: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected shutdown timeout: %v", cfg.ShutdownTimeout)
	}
}

func TestLoadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	if _, err := LoadFile(Default(), path, false); err != nil {
		t.Fatalf("optional missing file should be ignored: %v", err)
	}
	if _, err := LoadFile(Default(), path, true); err == nil {
		t.Fatal("required missing file should fail")
	}
}

func TestLoadFileRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("shutdown_timeout = \"soon\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadFile(Default(), path, true)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}

func TestLoadPrefersEnvOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("backend = \"file\"\ndata_dir = \"from-file\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(EnvConfigPath, path)
	t.Setenv("TASKPAD_DATA_DIR", "from-env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Backend != "file" || cfg.DataDir != "from-env" {
		t.Fatalf("unexpected layering: %+v", cfg)
	}
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	cases := map[string]func(*Config){
		"backend":  func(c *Config) { c.Backend = "redis" },
		"level":    func(c *Config) { c.LogLevel = "loud" },
		"format":   func(c *Config) { c.LogFormat = "xml" },
		"data dir": func(c *Config) { c.DataDir = " " },
		"timeout":  func(c *Config) { c.ShutdownTimeout = 0 },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected invalid config, got %v", name, err)
		}
	}
}

func TestLogPath(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/data"
	if got := cfg.LogPath(); got != filepath.Join("/data", "taskpad.log") {
		t.Fatalf("unexpected default log path: %s", got)
	}
	cfg.LogFile = "/var/log/pad.log"
	if got := cfg.LogPath(); got != "/var/log/pad.log" {
		t.Fatalf("unexpected explicit log path: %s", got)
	}
}
