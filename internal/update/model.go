package update

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskpad/internal/store"
)

type Mode string

const (
	ModeLoading Mode = "Loading"
	ModeList    Mode = "List"
	ModeForm    Mode = "Form"
	ModeDialog  Mode = "Dialog"
	ModeAlert   Mode = "Alert"
	ModePalette Mode = "Palette"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Add     string
	Toggle  string
	Edit    string
	Theme   string
	Palette string
	Help    string
	Quit    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
)

type Model struct {
	Snapshot    store.Snapshot
	Cursor      int
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error
	Width       int

	store   *store.Store
	changes chan struct{}
	stop    func()
	logger  *log.Logger
	ctx     context.Context

	titleInput   textinput.Model
	descArea     textarea.Model
	commandInput textinput.Model
	helpModel    help.Model
	focus        formField
	formKey      string
	previewKey   string
	preview      string
}

// LoadedMsg carries the snapshot produced by the startup load.
type LoadedMsg struct {
	Snapshot store.Snapshot
}

// StoreChangedMsg is delivered whenever the store notifies its subscribers.
type StoreChangedMsg struct{}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type Option func(*Model)

func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithContext sets the context the startup load runs under.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// NewModel builds the UI over s and subscribes to its changes. Call Close
// once the program has exited.
func NewModel(s *store.Store, opts ...Option) Model {
	m := Model{
		Snapshot: s.Snapshot(),
		Keys: GlobalKeyMap{
			Add:     "a",
			Toggle:  " ",
			Edit:    "enter",
			Theme:   "t",
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
		store:   s,
		changes: make(chan struct{}, 1),
		logger:  log.Default(),
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	changes := m.changes
	m.stop = s.Subscribe(func(store.Snapshot) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	m.initBubbleComponents()
	return m
}

// Close drops the store subscription.
func (m Model) Close() {
	if m.stop != nil {
		m.stop()
	}
}

func (m *Model) initBubbleComponents() {
	m.titleInput = textinput.New()
	m.titleInput.Prompt = "> "
	m.titleInput.Placeholder = "Title"
	m.titleInput.CharLimit = 256
	m.titleInput.Width = 48

	m.descArea = textarea.New()
	m.descArea.Placeholder = "Description (markdown)"
	m.descArea.ShowLineNumbers = false
	m.descArea.SetWidth(50)
	m.descArea.SetHeight(6)

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
}

func (m Model) Mode() Mode {
	switch {
	case !m.Snapshot.Loaded:
		return ModeLoading
	case m.Snapshot.Alert != "":
		return ModeAlert
	}
	switch m.Snapshot.Modal.(type) {
	case store.Confirming:
		return ModeDialog
	case store.AddingNew, store.Editing:
		return ModeForm
	}
	if m.Palette.Active {
		return ModePalette
	}
	return ModeList
}

func loadCmd(ctx context.Context, s *store.Store) tea.Cmd {
	return func() tea.Msg {
		return LoadedMsg{Snapshot: s.Load(ctx)}
	}
}

func waitForChangeCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return StoreChangedMsg{}
	}
}
