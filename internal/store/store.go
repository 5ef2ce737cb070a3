// Package store holds the authoritative in-memory task collection, the theme
// flag and the modal slot. Every change computes a new collection with the
// pure reducers, hands a fire-and-forget write to the persister, and
// notifies subscribers with a fresh Snapshot.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/persistence"
)

var (
	ErrModalOpen        = errors.New("store: modal already open")
	ErrNoDraft          = errors.New("store: no draft open")
	ErrNothingToConfirm = errors.New("store: nothing to confirm")
	ErrTaskNotFound     = errors.New("store: task not found")
)

// Persister is the persistence adapter as seen by the store.
type Persister interface {
	LoadTasks(ctx context.Context) []model.Task
	LoadTheme(ctx context.Context) bool
	SaveTasks(ctx context.Context, tasks []model.Task) *persistence.Write
	SaveTheme(ctx context.Context, dark bool) *persistence.Write
}

// Snapshot is an immutable view of the store handed to subscribers.
type Snapshot struct {
	Tasks  []model.Task
	Dark   bool
	Modal  Modal
	Alert  string
	Loaded bool
}

// Listener is called synchronously after every state change.
type Listener func(Snapshot)

type Option func(*Store)

func WithIDSource(ids *model.IDSource) Option {
	return func(s *Store) {
		if ids != nil {
			s.ids = ids
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithContext sets the context handed to persistence writes.
func WithContext(ctx context.Context) Option {
	return func(s *Store) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

type listenerEntry struct {
	id int
	fn Listener
}

type Store struct {
	persist Persister
	ids     *model.IDSource
	logger  *log.Logger
	ctx     context.Context

	mu     sync.Mutex
	tasks  []model.Task
	dark   bool
	modal  Modal
	alert  string
	loaded bool

	listeners    []listenerEntry
	nextListener int
}

func New(p Persister, opts ...Option) *Store {
	s := &Store{
		persist: p,
		ids:     model.NewIDSource(),
		logger:  log.Default(),
		ctx:     context.Background(),
		tasks:   []model.Task{},
		modal:   Closed{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextListener++
	id := s.nextListener
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Load seeds the store from persistence. It is meant to run once at
// startup; a repeated id in the stored record gets a fresh id and the
// repaired collection is written back.
func (s *Store) Load(ctx context.Context) Snapshot {
	tasks := s.persist.LoadTasks(ctx)
	dark := s.persist.LoadTheme(ctx)

	var snap Snapshot
	s.apply(func() error {
		deduped, changed := Dedupe(tasks, s.ids)
		s.tasks = deduped
		s.dark = dark
		s.loaded = true
		if changed > 0 {
			s.logger.Warn("reassigned duplicate task ids", "count", changed)
			s.saveTasksLocked()
		}
		s.logger.Info("loaded", "tasks", len(deduped), "dark", dark)
		return nil
	}, &snap)
	return snap
}

// OpenNew opens an empty new-task form.
func (s *Store) OpenNew() error {
	return s.apply(func() error {
		if _, ok := s.modal.(Closed); !ok {
			return ErrModalOpen
		}
		s.modal = AddingNew{}
		return nil
	}, nil)
}

// AddTask appends a task built from title and description and closes the
// new-task form without asking. Empty input raises the validation alert and
// leaves everything else as it was.
func (s *Store) AddTask(title, description string) (model.Task, error) {
	var added model.Task
	err := s.apply(func() error {
		var err error
		added, err = s.addLocked(model.Draft{Title: title, Description: description})
		return err
	}, nil)
	return added, err
}

// CloseDraft closes the open form. A non-empty new-task draft asks for
// confirmation first unless force is set.
func (s *Store) CloseDraft(force bool) {
	s.apply(func() error {
		switch m := s.modal.(type) {
		case AddingNew:
			if !force && !m.Draft.IsEmpty() {
				s.modal = Confirming{Kind: ConfirmDiscard, Dialog: discardDialog, Resume: m}
				return nil
			}
			s.modal = Closed{}
		case Editing:
			s.modal = Closed{}
		case Confirming:
			if force {
				s.modal = Closed{}
			}
		}
		return nil
	}, nil)
}

// ToggleComplete flips the completion flag of id and persists the whole
// collection, even when id matches nothing.
func (s *Store) ToggleComplete(id int64) {
	s.apply(func() error {
		s.tasks = Toggle(s.tasks, id)
		s.saveTasksLocked()
		return nil
	}, nil)
}

// OpenEdit seeds an edit form from task.
func (s *Store) OpenEdit(task model.Task) error {
	return s.apply(func() error {
		if _, ok := s.modal.(Closed); !ok {
			return ErrModalOpen
		}
		s.modal = Editing{
			TaskID: task.ID,
			Draft:  model.Draft{Title: task.Title, Description: task.Desc()},
		}
		return nil
	}, nil)
}

// UpdateTask rewrites the title and description of id in place and closes
// the edit form.
func (s *Store) UpdateTask(id int64, title, description string) error {
	return s.apply(func() error {
		return s.updateLocked(id, model.Draft{Title: title, Description: description})
	}, nil)
}

// DeleteTask asks for confirmation; nothing is removed until Confirm.
func (s *Store) DeleteTask(id int64) error {
	return s.apply(func() error {
		switch s.modal.(type) {
		case Confirming, AddingNew:
			return ErrModalOpen
		}
		s.modal = Confirming{Kind: ConfirmDelete, Target: id, Dialog: deleteDialog, Resume: s.modal}
		return nil
	}, nil)
}

// Confirm carries out the pending confirmation.
func (s *Store) Confirm() error {
	return s.apply(func() error {
		c, ok := s.modal.(Confirming)
		if !ok {
			return ErrNothingToConfirm
		}
		switch c.Kind {
		case ConfirmDelete:
			s.tasks = Remove(s.tasks, c.Target)
			s.saveTasksLocked()
			s.logger.Debug("task deleted", "id", c.Target)
		case ConfirmDiscard:
			s.logger.Debug("draft discarded")
		}
		s.modal = Closed{}
		return nil
	}, nil)
}

// Cancel dismisses the pending confirmation and returns to the form it
// interrupted.
func (s *Store) Cancel() error {
	return s.apply(func() error {
		c, ok := s.modal.(Confirming)
		if !ok {
			return ErrNothingToConfirm
		}
		s.modal = c.Resume
		if s.modal == nil {
			s.modal = Closed{}
		}
		return nil
	}, nil)
}

func (s *Store) SetDraftTitle(title string) error {
	return s.editDraft(func(d *model.Draft) { d.Title = title })
}

func (s *Store) SetDraftDescription(description string) error {
	return s.editDraft(func(d *model.Draft) { d.Description = description })
}

// SubmitDraft saves the open form: a new-task draft is added, an edit draft
// updates its task.
func (s *Store) SubmitDraft() error {
	return s.apply(func() error {
		switch m := s.modal.(type) {
		case AddingNew:
			_, err := s.addLocked(m.Draft)
			return err
		case Editing:
			return s.updateLocked(m.TaskID, m.Draft)
		default:
			return ErrNoDraft
		}
	}, nil)
}

func (s *Store) DismissAlert() {
	s.apply(func() error {
		s.alert = ""
		return nil
	}, nil)
}

// ToggleTheme flips dark mode and persists the flag on its own record.
func (s *Store) ToggleTheme() bool {
	var dark bool
	s.apply(func() error {
		s.dark = !s.dark
		dark = s.dark
		s.persist.SaveTheme(s.ctx, s.dark)
		return nil
	}, nil)
	return dark
}

func (s *Store) addLocked(d model.Draft) (model.Task, error) {
	if err := d.Validate(); err != nil {
		s.alert = addValidationAlert
		return model.Task{}, err
	}
	task, err := model.NewTask(s.ids.Next(), d)
	if err != nil {
		s.alert = addValidationAlert
		return model.Task{}, err
	}
	s.tasks = Append(s.tasks, task)
	s.saveTasksLocked()
	if _, ok := s.modal.(AddingNew); ok {
		s.modal = Closed{}
	}
	s.logger.Debug("task added", "id", task.ID)
	return task, nil
}

func (s *Store) updateLocked(id int64, d model.Draft) error {
	if err := d.Validate(); err != nil {
		s.alert = updateValidationAlert
		return err
	}
	if _, ok := Find(s.tasks, id); !ok {
		return ErrTaskNotFound
	}
	s.tasks = Replace(s.tasks, id, d)
	s.saveTasksLocked()
	if _, ok := s.modal.(Editing); ok {
		s.modal = Closed{}
	}
	s.logger.Debug("task updated", "id", id)
	return nil
}

func (s *Store) editDraft(fn func(*model.Draft)) error {
	return s.apply(func() error {
		switch m := s.modal.(type) {
		case AddingNew:
			fn(&m.Draft)
			s.modal = m
		case Editing:
			fn(&m.Draft)
			s.modal = m
		default:
			return ErrNoDraft
		}
		return nil
	}, nil)
}

func (s *Store) saveTasksLocked() {
	s.persist.SaveTasks(s.ctx, s.tasks)
}

// apply runs fn under the lock, then notifies listeners outside it. When out
// is non-nil it receives the snapshot that was broadcast.
func (s *Store) apply(fn func() error, out *Snapshot) error {
	s.mu.Lock()
	err := fn()
	snap := s.snapshotLocked()
	listeners := make([]Listener, len(s.listeners))
	for i, l := range s.listeners {
		listeners[i] = l.fn
	}
	s.mu.Unlock()

	if out != nil {
		*out = snap
	}
	for _, l := range listeners {
		l(snap)
	}
	return err
}

func (s *Store) snapshotLocked() Snapshot {
	tasks := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		tasks[i] = t.Clone()
	}
	return Snapshot{
		Tasks:  tasks,
		Dark:   s.dark,
		Modal:  s.modal,
		Alert:  s.alert,
		Loaded: s.loaded,
	}
}
