package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Palette is one colour scheme of the app.
type Palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Primary    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Danger     lipgloss.Color
	Success    lipgloss.Color
}

var (
	LightPalette = Palette{
		Background: lipgloss.Color("#f8f9fa"),
		Surface:    lipgloss.Color("#ffffff"),
		Primary:    lipgloss.Color("#6366f1"),
		Text:       lipgloss.Color("#1f2937"),
		Muted:      lipgloss.Color("#56595f"),
		Border:     lipgloss.Color("#e5e7eb"),
		Danger:     lipgloss.Color("#ef4444"),
		Success:    lipgloss.Color("#10b981"),
	}
	DarkPalette = Palette{
		Background: lipgloss.Color("#1a1a1a"),
		Surface:    lipgloss.Color("#2d2d2d"),
		Primary:    lipgloss.Color("#6366f1"),
		Text:       lipgloss.Color("#f3f4f6"),
		Muted:      lipgloss.Color("#8b93a3"),
		Border:     lipgloss.Color("#404040"),
		Danger:     lipgloss.Color("#f87171"),
		Success:    lipgloss.Color("#34d399"),
	}
)

func PaletteFor(dark bool) Palette {
	if dark {
		return DarkPalette
	}
	return LightPalette
}

// Styles are the lipgloss styles derived from a Palette.
type Styles struct {
	Header    lipgloss.Style
	Panel     lipgloss.Style
	Row       lipgloss.Style
	Selected  lipgloss.Style
	Completed lipgloss.Style
	Muted     lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Dialog    lipgloss.Style
	Button    lipgloss.Style
	Danger    lipgloss.Style
}

func NewStyles(p Palette) Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		Row:       lipgloss.NewStyle().Foreground(p.Text),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Completed: lipgloss.NewStyle().Strikethrough(true).Foreground(p.Muted),
		Muted:     lipgloss.NewStyle().Foreground(p.Muted),
		Status:    lipgloss.NewStyle().Foreground(p.Success),
		Error:     lipgloss.NewStyle().Foreground(p.Danger),
		Dialog:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Primary).Padding(1, 2),
		Button:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Danger:    lipgloss.NewStyle().Bold(true).Foreground(p.Danger),
	}
}

type AppData struct {
	Dark       bool
	Header     string
	Body       string
	Side       string
	Overlay    string
	StatusLine string
	IsError    bool
	Footer     string
	Width      int
}

func RenderApp(data AppData) string {
	st := NewStyles(PaletteFor(data.Dark))
	width := data.Width
	if width <= 0 {
		width = 58
	}

	body := st.Panel.Width(width).Render(data.Body)
	if strings.TrimSpace(data.Side) != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, st.Panel.Width(width).Render(data.Side))
	}

	lines := []string{st.Header.Render(data.Header), body}
	if data.Overlay != "" {
		lines = append(lines, data.Overlay)
	}
	if data.StatusLine != "" {
		if data.IsError {
			lines = append(lines, st.Error.Render(data.StatusLine))
		} else {
			lines = append(lines, st.Status.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, st.Muted.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders a task description with the glamour style that
// matches the theme. Rendering errors fall back to the raw text.
func RenderMarkdown(md string, dark bool) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if dark {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
