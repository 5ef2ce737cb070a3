package model

import (
	"errors"
	"strings"
)

var (
	ErrEmptyTask = errors.New("model: task needs a title or description")
	ErrMissingID = errors.New("model: task id is required")
)

// Task is the persisted to-do entry. The JSON shape is the on-disk record
// format: {"id":number,"title":string,"description":string|null,"completed":bool}.
type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// Desc returns the description, or "" when the task has none.
func (t Task) Desc() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// Label is what a list row shows: the title, or the description for
// description-only tasks.
func (t Task) Label() string {
	if strings.TrimSpace(t.Title) != "" {
		return t.Title
	}
	return t.Desc()
}

func (t Task) Validate() error {
	if t.ID == 0 {
		return ErrMissingID
	}
	if strings.TrimSpace(t.Title) == "" && strings.TrimSpace(t.Desc()) == "" {
		return ErrEmptyTask
	}
	return nil
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	out := t
	if t.Description != nil {
		d := *t.Description
		out.Description = &d
	}
	return out
}

// Draft is the unpersisted edit buffer behind the add and edit forms.
type Draft struct {
	Title       string
	Description string
}

func (d Draft) Trimmed() Draft {
	return Draft{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
	}
}

func (d Draft) IsEmpty() bool {
	t := d.Trimmed()
	return t.Title == "" && t.Description == ""
}

func (d Draft) Validate() error {
	if d.IsEmpty() {
		return ErrEmptyTask
	}
	return nil
}

// NewTask builds an incomplete task from a draft. An empty description is
// stored as null.
func NewTask(id int64, d Draft) (Task, error) {
	if err := d.Validate(); err != nil {
		return Task{}, err
	}
	d = d.Trimmed()
	task := Task{ID: id, Title: d.Title}
	if d.Description != "" {
		desc := d.Description
		task.Description = &desc
	}
	return task, task.Validate()
}

// StringPtr is a small helper for building tasks with descriptions.
func StringPtr(s string) *string {
	return &s
}
