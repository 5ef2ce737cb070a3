package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/model"
)

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Snapshot.Tasks)-1 {
			m.Cursor++
		}
	case "home", "g":
		m.Cursor = 0
	case "end", "G":
		if n := len(m.Snapshot.Tasks); n > 0 {
			m.Cursor = n - 1
		}
	case m.Keys.Toggle:
		if task, ok := m.selectedTask(); ok {
			m.store.ToggleComplete(task.ID)
		}
	case m.Keys.Edit:
		if task, ok := m.selectedTask(); ok {
			m.report(m.store.OpenEdit(task), "")
		}
	case m.Keys.Add:
		m.report(m.store.OpenNew(), "")
	case m.Keys.Theme:
		if m.store.ToggleTheme() {
			m.Status = StatusBar{Text: "dark mode on"}
		} else {
			m.Status = StatusBar{Text: "dark mode off"}
		}
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
	}
	return m, nil
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Snapshot.Tasks) {
		return model.Task{}, false
	}
	return m.Snapshot.Tasks[m.Cursor], true
}

// report surfaces err on the status bar and the log. A nil err sets ok as
// the status text when ok is non-empty.
func (m *Model) report(err error, ok string) {
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.logger.Debug("intent rejected", "mode", m.Mode(), "err", err)
		return
	}
	if ok != "" {
		m.Status = StatusBar{Text: ok}
	}
}
