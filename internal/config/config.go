// Package config resolves taskpad's runtime configuration from defaults,
// an optional TOML file and TASKPAD_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sandeepkv93/taskpad/internal/storage"
)

// EnvConfigPath names the environment variable that points at the config file.
const EnvConfigPath = "TASKPAD_CONFIG"

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Backend         string        `toml:"backend" yaml:"backend"`
	DataDir         string        `toml:"data_dir" yaml:"data_dir"`
	LogLevel        string        `toml:"log_level" yaml:"log_level"`
	LogFormat       string        `toml:"log_format" yaml:"log_format"`
	LogFile         string        `toml:"log_file" yaml:"log_file"`
	LogTimestamps   bool          `toml:"log_timestamps" yaml:"log_timestamps"`
	ShutdownTimeout time.Duration `toml:"-" yaml:"shutdown_timeout"`
}

func Default() Config {
	dataDir := ".taskpad"
	if dir, err := os.UserConfigDir(); err == nil {
		dataDir = filepath.Join(dir, "taskpad")
	}
	return Config{
		Backend:         storage.BackendSQLite,
		DataDir:         dataDir,
		LogLevel:        "info",
		LogFormat:       "logfmt",
		LogTimestamps:   true,
		ShutdownTimeout: 2 * time.Second,
	}
}

// DefaultPath is where the config file lives when neither a flag nor
// TASKPAD_CONFIG names one.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "taskpad", "config.toml")
}

// ResolvePath picks the config file path: the explicit flag value, then
// TASKPAD_CONFIG, then DefaultPath.
func ResolvePath(flag string) string {
	if p := strings.TrimSpace(flag); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return DefaultPath()
}

type fileConfig struct {
	Config
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// LoadFile overlays the TOML file at path on base. A missing file is not an
// error unless required is set.
func LoadFile(base Config, path string, required bool) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return base, nil
	}
	fc := fileConfig{Config: base}
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return base, nil
		}
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := fc.Config
	if fc.ShutdownTimeout != "" {
		d, err := time.ParseDuration(fc.ShutdownTimeout)
		if err != nil {
			return base, fmt.Errorf("%w: shutdown_timeout %q", ErrInvalidConfig, fc.ShutdownTimeout)
		}
		cfg.ShutdownTimeout = d
	}
	return cfg, nil
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TASKPAD_BACKEND"); ok {
		cfg.Backend = v
	}
	if v, ok := getEnvString("TASKPAD_DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := getEnvString("TASKPAD_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("TASKPAD_LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
	if v, ok := getEnvString("TASKPAD_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvBool("TASKPAD_LOG_TIMESTAMPS"); ok {
		cfg.LogTimestamps = v
	}
	if v, ok := getEnvInt("TASKPAD_SHUTDOWN_TIMEOUT_MS"); ok && v > 0 {
		cfg.ShutdownTimeout = time.Duration(v) * time.Millisecond
	}
	return cfg
}

// Load resolves the full configuration for a run.
func Load(flagPath string) (Config, error) {
	path := ResolvePath(flagPath)
	cfg, err := LoadFile(Default(), path, strings.TrimSpace(flagPath) != "")
	if err != nil {
		return Config{}, err
	}
	cfg = FromEnv(cfg)
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case storage.BackendSQLite, storage.BackendFile, storage.BackendMemory:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	if c.Backend != storage.BackendMemory && strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: data_dir is required for %s backend", ErrInvalidConfig, c.Backend)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "logfmt", "json", "text":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// LogPath is the log file in effect: the configured one, or taskpad.log in
// the data directory.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogFile) != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "taskpad.log")
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
