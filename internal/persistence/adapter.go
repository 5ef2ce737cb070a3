// Package persistence stores the task collection and the theme flag as two
// independent records in a key-value store. Reads fail soft to defaults and
// writes are fire-and-forget: every failure is logged here and never
// reaches the caller.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/storage"
)

const (
	TasksKey = "tasks"
	ThemeKey = "isDarkMode"
)

// Failure is reported for every write that did not reach storage.
type Failure struct {
	Key string
	Seq uint64
	Err error
}

// Checkpoint is the tasks snapshot of the most recently completed
// successful write. Writes may complete out of order, so Seq can be lower
// than the last issued sequence.
type Checkpoint struct {
	Seq   uint64
	Tasks []model.Task
}

type Option func(*Adapter)

func WithLogger(l *log.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithFailureHook registers fn to run after a failed write has been logged.
func WithFailureHook(fn func(Failure)) Option {
	return func(a *Adapter) { a.onFailure = fn }
}

type Adapter struct {
	kv        storage.KV
	logger    *log.Logger
	onFailure func(Failure)

	seq      atomic.Uint64
	inflight sync.WaitGroup

	mu      sync.Mutex
	last    Checkpoint
	hasLast bool
}

func NewAdapter(kv storage.KV, opts ...Option) *Adapter {
	a := &Adapter{
		kv:     kv,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LoadTasks returns the stored collection, or an empty one when the record
// is missing, unreadable, or malformed.
func (a *Adapter) LoadTasks(ctx context.Context) []model.Task {
	raw, err := a.kv.Get(ctx, TasksKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.logger.Debug("no stored tasks", "key", TasksKey)
		} else {
			a.logger.Error("load tasks", "key", TasksKey, "err", err)
		}
		return []model.Task{}
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return []model.Task{}
	}
	if err := validateTasksRecord([]byte(trimmed)); err != nil {
		a.logger.Error("load tasks", "key", TasksKey, "err", err)
		return []model.Task{}
	}
	var tasks []model.Task
	if err := json.Unmarshal([]byte(trimmed), &tasks); err != nil {
		a.logger.Error("load tasks", "key", TasksKey, "err", err)
		return []model.Task{}
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			a.logger.Warn("dropping stored task", "id", t.ID, "err", err)
			continue
		}
		out = append(out, t)
	}
	return out
}

// SaveTasks overwrites the stored collection with a copy of tasks taken at
// call time. The write runs detached; the returned Write may be ignored.
func (a *Adapter) SaveTasks(ctx context.Context, tasks []model.Task) *Write {
	snapshot := cloneTasks(tasks)
	w := a.begin(TasksKey)
	go a.run(ctx, w, func() (string, error) {
		raw, err := json.Marshal(snapshot)
		return string(raw), err
	}, func() {
		a.mu.Lock()
		a.last = Checkpoint{Seq: w.seq, Tasks: snapshot}
		a.hasLast = true
		a.mu.Unlock()
	})
	return w
}

// LoadTheme returns the stored dark-mode flag, false when absent or invalid.
func (a *Adapter) LoadTheme(ctx context.Context) bool {
	raw, err := a.kv.Get(ctx, ThemeKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.logger.Debug("no stored theme", "key", ThemeKey)
		} else {
			a.logger.Error("load theme", "key", ThemeKey, "err", err)
		}
		return false
	}
	var dark bool
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &dark); err != nil {
		a.logger.Error("load theme", "key", ThemeKey, "err", err)
		return false
	}
	return dark
}

func (a *Adapter) SaveTheme(ctx context.Context, dark bool) *Write {
	w := a.begin(ThemeKey)
	go a.run(ctx, w, func() (string, error) {
		raw, err := json.Marshal(dark)
		return string(raw), err
	}, nil)
	return w
}

// LastPersisted reports the most recently completed successful tasks write.
func (a *Adapter) LastPersisted() (Checkpoint, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.hasLast {
		return Checkpoint{}, false
	}
	return Checkpoint{Seq: a.last.Seq, Tasks: cloneTasks(a.last.Tasks)}, true
}

// Wait blocks until every write issued so far has finished or ctx is done.
// It is meant for shutdown, never for the render path.
func (a *Adapter) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Adapter) begin(key string) *Write {
	a.inflight.Add(1)
	return &Write{
		seq:  a.seq.Add(1),
		key:  key,
		done: make(chan struct{}),
	}
}

func (a *Adapter) run(ctx context.Context, w *Write, encode func() (string, error), onSuccess func()) {
	defer a.inflight.Done()
	defer close(w.done)

	value, err := encode()
	if err == nil {
		err = a.kv.Set(context.WithoutCancel(ctx), w.key, value)
	}
	if err != nil {
		w.err = err
		a.logger.Error("save failed", "key", w.key, "seq", w.seq, "err", err)
		if a.onFailure != nil {
			a.onFailure(Failure{Key: w.key, Seq: w.seq, Err: err})
		}
		return
	}
	if onSuccess != nil {
		onSuccess()
	}
	a.logger.Debug("saved", "key", w.key, "seq", w.seq)
}

func cloneTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
