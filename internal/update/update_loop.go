package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/store"
	"github.com/sandeepkv93/taskpad/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(loadCmd(m.ctx, m.store), waitForChangeCmd(m.changes))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		switch m.Mode() {
		case ModeLoading:
			if typed.String() == m.Keys.Quit {
				m.Quitting = true
				return m, tea.Quit
			}
			return m, nil
		case ModeAlert:
			m = m.handleAlertKey(typed)
		case ModeDialog:
			m = m.handleDialogKey(typed)
		case ModeForm:
			m, cmd = m.handleFormKey(typed)
		case ModePalette:
			m = m.handlePaletteKey(typed)
		default:
			m, cmd = m.handleListKey(typed)
		}
		m.sync()
		return m, cmd
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		return m, nil
	case LoadedMsg:
		m.Snapshot = typed.Snapshot
		m.sync()
		return m, nil
	case StoreChangedMsg:
		m.sync()
		return m, waitForChangeCmd(m.changes)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}
	return m, nil
}

// sync pulls the latest snapshot from the store and reconciles cursor,
// form inputs and the description preview with it.
func (m *Model) sync() {
	m.Snapshot = m.store.Snapshot()
	if n := len(m.Snapshot.Tasks); m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.syncForm()
	m.syncPreview()
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	snap := m.Snapshot
	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
	}

	body := m.renderListView()
	side := m.renderPreviewPane()
	if _, ok := store.ActiveDraft(snap.Modal); ok {
		body = m.renderFormView()
		side = ""
	}
	if m.HelpVisible {
		side = m.renderHelpView()
	}

	theme := "light"
	if snap.Dark {
		theme = "dark"
	}
	width := 58
	if m.Width > 0 && m.Width/2-4 > 20 && m.Width/2-4 < width {
		width = m.Width/2 - 4
	}

	return views.RenderApp(views.AppData{
		Dark:       snap.Dark,
		Header:     fmt.Sprintf("taskpad | %d tasks | %s", len(snap.Tasks), theme),
		Body:       body,
		Side:       side,
		Overlay:    m.renderOverlay(),
		StatusLine: status,
		IsError:    m.Status.IsError,
		Footer:     m.renderFooter(),
		Width:      width,
	})
}
