package views

import (
	"fmt"
	"strings"
)

// EmptyStateText is shown in place of the list when there are no tasks.
const EmptyStateText = "You can add new tasks"

type TaskRowData struct {
	Position  int
	Label     string
	HasDesc   bool
	Completed bool
}

type TaskListData struct {
	Dark     bool
	Rows     []TaskRowData
	Cursor   int
	Loaded   bool
	Progress string
}

type FormData struct {
	Dark             bool
	Heading          string
	TitleView        string
	DescriptionView  string
	DescriptionFocus bool
	CanDelete        bool
}

type DialogData struct {
	Dark         bool
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
	Destructive  bool
}

type HelpPanelData struct {
	Mode     string
	Bindings []string
	Commands []string
	HelpView string
}

func RenderTaskList(data TaskListData) string {
	st := NewStyles(PaletteFor(data.Dark))
	if !data.Loaded {
		return st.Muted.Render("loading tasks...")
	}
	if len(data.Rows) == 0 {
		return st.Muted.Render(EmptyStateText)
	}

	var b strings.Builder
	if data.Progress != "" {
		b.WriteString(st.Muted.Render(data.Progress) + "\n\n")
	}
	for i, row := range data.Rows {
		cursor := " "
		box := "[ ]"
		if row.Completed {
			box = "[x]"
		}
		label := row.Label
		if row.HasDesc {
			label += " ..."
		}
		line := fmt.Sprintf("%d. %s %s", row.Position, box, label)
		switch {
		case i == data.Cursor:
			cursor = ">"
			line = st.Selected.Render(line)
		case row.Completed:
			line = st.Completed.Render(line)
		default:
			line = st.Row.Render(line)
		}
		b.WriteString(cursor + " " + line + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderForm(data FormData) string {
	st := NewStyles(PaletteFor(data.Dark))
	var b strings.Builder
	b.WriteString(st.Header.Render(data.Heading) + "\n\n")
	b.WriteString("title:\n" + data.TitleView + "\n\n")
	b.WriteString("description:\n" + data.DescriptionView + "\n\n")
	actions := "[tab] field  [ctrl+s] save  [esc] close"
	if data.CanDelete {
		actions += "  " + st.Danger.Render("[ctrl+d] delete")
	}
	b.WriteString(st.Muted.Render(actions))
	return b.String()
}

func RenderDialog(data DialogData) string {
	st := NewStyles(PaletteFor(data.Dark))
	confirm := st.Button.Render("[y] " + data.ConfirmLabel)
	if data.Destructive {
		confirm = st.Danger.Render("[y] " + data.ConfirmLabel)
	}
	body := fmt.Sprintf("%s\n\n%s\n\n%s   %s",
		st.Header.Render(data.Title),
		data.Message,
		confirm,
		st.Muted.Render("[n] "+data.CancelLabel),
	)
	return st.Dialog.Render(body)
}

// RenderAlert renders the blocking validation alert.
func RenderAlert(dark bool, message string) string {
	if strings.TrimSpace(message) == "" {
		return ""
	}
	st := NewStyles(PaletteFor(dark))
	return st.Dialog.Render(fmt.Sprintf("%s\n\n%s\n\n%s",
		st.Error.Render("Error"),
		message,
		st.Button.Render("[enter] OK"),
	))
}

func RenderDescription(dark bool, label, rendered string) string {
	st := NewStyles(PaletteFor(dark))
	if strings.TrimSpace(rendered) == "" {
		rendered = st.Muted.Render("(no description)")
	}
	return st.Header.Render(label) + "\n\n" + rendered
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("help (%s):\n", strings.ToLower(data.Mode)))
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if len(data.Commands) > 0 {
		b.WriteString("\ncommands:\n")
		for _, c := range data.Commands {
			b.WriteString("- /" + c + "\n")
		}
	}
	if data.HelpView != "" {
		b.WriteString("\n" + data.HelpView)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// ProgressLine summarises completion, e.g. "2/5 done".
func ProgressLine(done, total int) string {
	if total == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d done", done, total)
}
