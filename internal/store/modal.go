package store

import "github.com/sandeepkv93/taskpad/internal/model"

// Modal is what the single modal slot currently holds. Exactly one variant
// is active at a time: Closed, AddingNew, Editing, or Confirming.
type Modal interface {
	modal()
}

type Closed struct{}

type AddingNew struct {
	Draft model.Draft
}

type Editing struct {
	TaskID int64
	Draft  model.Draft
}

type ConfirmKind string

const (
	ConfirmDiscard ConfirmKind = "discard"
	ConfirmDelete  ConfirmKind = "delete"
)

// Dialog is the text of a two-outcome confirmation.
type Dialog struct {
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
}

// Confirming asks the user to confirm Kind on Target. Cancel returns to
// Resume.
type Confirming struct {
	Kind   ConfirmKind
	Target int64
	Dialog Dialog
	Resume Modal
}

func (Closed) modal()     {}
func (AddingNew) modal()  {}
func (Editing) modal()    {}
func (Confirming) modal() {}

var (
	discardDialog = Dialog{
		Title:        "Discard Task",
		Message:      "Are you sure you want to discard this task?",
		ConfirmLabel: "Discard",
		CancelLabel:  "Cancel",
	}
	deleteDialog = Dialog{
		Title:        "Delete Task",
		Message:      "Are you sure you want to delete this task?",
		ConfirmLabel: "Delete",
		CancelLabel:  "Cancel",
	}
)

const (
	addValidationAlert    = "Please enter a task title or description!"
	updateValidationAlert = "Please enter a title or description!"
)

// ActiveDraft returns the draft behind m, looking through a confirmation to
// the form it would resume.
func ActiveDraft(m Modal) (model.Draft, bool) {
	switch v := m.(type) {
	case AddingNew:
		return v.Draft, true
	case Editing:
		return v.Draft, true
	case Confirming:
		return ActiveDraft(v.Resume)
	default:
		return model.Draft{}, false
	}
}
