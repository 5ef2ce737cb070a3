package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func setupSQLite(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "taskpad-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func setupFile(t *testing.T) *FileKV {
	t.Helper()
	kv, err := NewFileKV(filepath.Join(t.TempDir(), "records"))
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	return kv
}

func backends(t *testing.T) map[string]KV {
	return map[string]KV{
		BackendSQLite: setupSQLite(t),
		BackendFile:   setupFile(t),
		BackendMemory: NewMemoryKV(),
	}
}

func TestKVGetMissingReturnsNotFound(t *testing.T) {
	for name, kv := range backends(t) {
		_, err := kv.Get(context.Background(), "tasks")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestKVSetOverwritesWholeValue(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		if err := kv.Set(ctx, "isDarkMode", "false"); err != nil {
			t.Fatalf("%s: first set: %v", name, err)
		}
		if err := kv.Set(ctx, "isDarkMode", "true"); err != nil {
			t.Fatalf("%s: second set: %v", name, err)
		}
		got, err := kv.Get(ctx, "isDarkMode")
		if err != nil {
			t.Fatalf("%s: get: %v", name, err)
		}
		if got != "true" {
			t.Fatalf("%s: expected overwritten value, got %q", name, got)
		}
	}
}

func TestKVKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		if err := kv.Set(ctx, "tasks", "[]"); err != nil {
			t.Fatalf("%s: set tasks: %v", name, err)
		}
		if _, err := kv.Get(ctx, "isDarkMode"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected theme key absent, got %v", name, err)
		}
	}
}

func TestKVRejectsInvalidKeys(t *testing.T) {
	for name, kv := range backends(t) {
		for _, key := range []string{"", "  ", "../escape", `a\b`, ".."} {
			if err := kv.Set(context.Background(), key, "x"); !errors.Is(err, ErrInvalidKey) {
				t.Fatalf("%s: key %q: expected ErrInvalidKey, got %v", name, key, err)
			}
		}
	}
}

func TestKVConcurrentWritersLeaveOneWholeValue(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		var wg sync.WaitGroup
		values := make(map[string]bool)
		for i := 0; i < 16; i++ {
			v := fmt.Sprintf(`[{"id":%d,"title":"task %d","description":null,"completed":false}]`, i+1, i)
			values[v] = true
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := kv.Set(ctx, "tasks", v); err != nil {
					t.Errorf("%s: concurrent set: %v", name, err)
				}
			}()
		}
		wg.Wait()
		got, err := kv.Get(ctx, "tasks")
		if err != nil {
			t.Fatalf("%s: get: %v", name, err)
		}
		if !values[got] {
			t.Fatalf("%s: value is not one of the written values: %q", name, got)
		}
	}
}

func TestSQLiteKVUpdatedAt(t *testing.T) {
	kv := setupSQLite(t)
	ctx := context.Background()
	fixed := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return fixed }

	if _, err := kv.UpdatedAt(ctx, "tasks"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := kv.Set(ctx, "tasks", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := kv.UpdatedAt(ctx, "tasks")
	if err != nil {
		t.Fatalf("updated at: %v", err)
	}
	if !got.Equal(fixed) {
		t.Fatalf("unexpected updated_at: %v", got)
	}
}

func TestKVHonoursCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, kv := range backends(t) {
		if err := kv.Set(ctx, "tasks", "[]"); err == nil {
			t.Fatalf("%s: expected error on canceled context", name)
		}
	}
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{BackendSQLite, BackendFile, BackendMemory} {
		kv, err := Open(backend, dir)
		if err != nil {
			t.Fatalf("open %s: %v", backend, err)
		}
		if err := kv.Set(context.Background(), "tasks", "[]"); err != nil {
			t.Fatalf("%s: set: %v", backend, err)
		}
		_ = kv.Close()
	}
	if _, err := Open("postgres", dir); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}
