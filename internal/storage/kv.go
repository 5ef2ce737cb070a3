package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound       = errors.New("storage: not found")
	ErrInvalidKey     = errors.New("storage: invalid key")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// KV is a string key-value store with whole-value replacement: a reader
// sees either the previous value or the new one, never a mix.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Open returns the backend named by backend rooted at dataDir.
func Open(backend, dataDir string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendFile:
		return NewFileKV(filepath.Join(dataDir, "records"))
	case BackendSQLite, "":
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return OpenSQLite(filepath.Join(dataDir, "taskpad.db"))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
