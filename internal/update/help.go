package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/taskpad/internal/commands"
	"github.com/sandeepkv93/taskpad/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     string(m.Mode()),
		Bindings: plain,
		Commands: commands.Usage(),
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) modeBindings() []KeyBinding {
	switch m.Mode() {
	case ModeForm:
		return []KeyBinding{
			{Key: "tab", Action: "switch field"},
			{Key: "ctrl+s", Action: "save task"},
			{Key: "esc", Action: "close form"},
			{Key: "ctrl+d", Action: "delete task (edit only)"},
		}
	case ModeDialog:
		return []KeyBinding{
			{Key: "y/enter", Action: "confirm"},
			{Key: "n/esc", Action: "cancel"},
		}
	case ModeAlert:
		return []KeyBinding{{Key: "enter/esc", Action: "dismiss"}}
	case ModePalette:
		return []KeyBinding{
			{Key: "enter", Action: "run command"},
			{Key: "esc", Action: "close palette"},
		}
	default:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "space", Action: "toggle complete"},
			{Key: m.Keys.Edit, Action: "edit task"},
			{Key: m.Keys.Add, Action: "add task"},
			{Key: m.Keys.Theme, Action: "toggle theme"},
			{Key: m.Keys.Palette, Action: "command palette"},
			{Key: m.Keys.Help, Action: "toggle help"},
			{Key: m.Keys.Quit, Action: "quit"},
		}
	}
}

func (m Model) helpBindings() []key.Binding {
	kbs := m.modeBindings()
	out := make([]key.Binding, 0, len(kbs))
	for _, kb := range kbs {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
