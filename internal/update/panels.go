package update

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskpad/internal/store"
	"github.com/sandeepkv93/taskpad/internal/views"
)

func (m Model) renderListView() string {
	snap := m.Snapshot
	rows := make([]views.TaskRowData, 0, len(snap.Tasks))
	done := 0
	for i, t := range snap.Tasks {
		if t.Completed {
			done++
		}
		rows = append(rows, views.TaskRowData{
			Position:  i + 1,
			Label:     t.Label(),
			HasDesc:   strings.TrimSpace(t.Title) != "" && strings.TrimSpace(t.Desc()) != "",
			Completed: t.Completed,
		})
	}
	return views.RenderTaskList(views.TaskListData{
		Dark:     snap.Dark,
		Rows:     rows,
		Cursor:   m.Cursor,
		Loaded:   snap.Loaded,
		Progress: views.ProgressLine(done, len(snap.Tasks)),
	})
}

func (m Model) renderFormView() string {
	heading := "New Task"
	_, editing := m.Snapshot.Modal.(store.Editing)
	if c, ok := m.Snapshot.Modal.(store.Confirming); ok {
		_, editing = c.Resume.(store.Editing)
	}
	if editing {
		heading = "Edit Task"
	}
	return views.RenderForm(views.FormData{
		Dark:             m.Snapshot.Dark,
		Heading:          heading,
		TitleView:        m.titleInput.View(),
		DescriptionView:  m.descArea.View(),
		DescriptionFocus: m.focus == fieldDescription,
		CanDelete:        editing,
	})
}

func (m Model) renderPreviewPane() string {
	task, ok := m.selectedTask()
	if !ok {
		return ""
	}
	return views.RenderDescription(m.Snapshot.Dark, task.Label(), m.preview)
}

// syncPreview re-renders the markdown preview only when the selected task,
// its description or the theme changed.
func (m *Model) syncPreview() {
	task, ok := m.selectedTask()
	if !ok {
		m.previewKey, m.preview = "", ""
		return
	}
	key := fmt.Sprintf("%d|%t|%s", task.ID, m.Snapshot.Dark, task.Desc())
	if key == m.previewKey {
		return
	}
	m.previewKey = key
	m.preview = views.RenderMarkdown(task.Desc(), m.Snapshot.Dark)
}

func (m Model) renderOverlay() string {
	snap := m.Snapshot
	var parts []string
	if c, ok := snap.Modal.(store.Confirming); ok {
		parts = append(parts, views.RenderDialog(views.DialogData{
			Dark:         snap.Dark,
			Title:        c.Dialog.Title,
			Message:      c.Dialog.Message,
			ConfirmLabel: c.Dialog.ConfirmLabel,
			CancelLabel:  c.Dialog.CancelLabel,
			Destructive:  c.Kind == store.ConfirmDelete,
		}))
	}
	if alert := views.RenderAlert(snap.Dark, snap.Alert); alert != "" {
		parts = append(parts, alert)
	}
	if m.Palette.Active {
		parts = append(parts, views.RenderCommandPalette(true, m.commandInput.View()))
	}
	return strings.Join(parts, "\n")
}

func (m Model) renderFooter() string {
	switch m.Mode() {
	case ModeForm:
		return "keys: tab field | ctrl+s save | esc close | ctrl+d delete"
	case ModeDialog:
		return "keys: y confirm | n cancel"
	case ModeAlert:
		return "keys: enter dismiss"
	case ModePalette:
		return "keys: enter run | esc close"
	default:
		return fmt.Sprintf("keys: j/k move | space done | enter edit | %s add | %s theme | %s cmd | %s help | %s quit",
			m.Keys.Add, m.Keys.Theme, m.Keys.Palette, m.Keys.Help, m.Keys.Quit)
	}
}
