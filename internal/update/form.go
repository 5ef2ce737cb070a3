package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/store"
)

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.store.CloseDraft(false)
		return m, nil
	case "tab", "shift+tab":
		m.switchField()
		return m, nil
	case "ctrl+s":
		err := m.store.SubmitDraft()
		if errors.Is(err, model.ErrEmptyTask) {
			// the store raised the validation alert
			return m, nil
		}
		m.report(err, "saved")
		return m, nil
	case "ctrl+d":
		if edit, ok := m.Snapshot.Modal.(store.Editing); ok {
			m.report(m.store.DeleteTask(edit.TaskID), "")
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == fieldDescription {
		m.descArea, cmd = m.descArea.Update(msg)
		m.report(m.store.SetDraftDescription(m.descArea.Value()), "")
	} else {
		m.titleInput, cmd = m.titleInput.Update(msg)
		m.report(m.store.SetDraftTitle(m.titleInput.Value()), "")
	}
	return m, cmd
}

func (m *Model) switchField() {
	if m.focus == fieldTitle {
		m.focus = fieldDescription
		m.titleInput.Blur()
		m.descArea.Focus()
		return
	}
	m.focus = fieldTitle
	m.descArea.Blur()
	m.titleInput.Focus()
}

// syncForm seeds the inputs from the draft whenever a different form opens.
// While the same form stays open the inputs are the source of truth.
func (m *Model) syncForm() {
	key := formKeyOf(m.Snapshot.Modal)
	if key == m.formKey {
		return
	}
	m.formKey = key
	draft, ok := store.ActiveDraft(m.Snapshot.Modal)
	if !ok {
		m.titleInput.Blur()
		m.descArea.Blur()
		m.titleInput.SetValue("")
		m.descArea.SetValue("")
		return
	}
	m.titleInput.SetValue(draft.Title)
	m.descArea.SetValue(draft.Description)
	m.focus = fieldTitle
	m.descArea.Blur()
	m.titleInput.Focus()
}

func formKeyOf(md store.Modal) string {
	switch v := md.(type) {
	case store.AddingNew:
		return "new"
	case store.Editing:
		return fmt.Sprintf("edit:%d", v.TaskID)
	case store.Confirming:
		return formKeyOf(v.Resume)
	default:
		return ""
	}
}

func (m Model) handleDialogKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "enter":
		m.report(m.store.Confirm(), "")
	case "n", "esc":
		m.report(m.store.Cancel(), "")
	}
	return m
}

func (m Model) handleAlertKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter", "esc":
		m.store.DismissAlert()
	}
	return m
}
