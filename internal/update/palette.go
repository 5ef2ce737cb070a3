package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/commands"
	"github.com/sandeepkv93/taskpad/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.report(err, "")
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := m.store.AddTask(a.Title, a.Description)
			if err != nil {
				return commands.Result{}, err
			}
			m.Cursor = len(m.store.Snapshot().Tasks) - 1
			return commands.Result{Message: fmt.Sprintf("added: %s", task.Label())}, nil
		},
		Done: func(t commands.TargetArgs) (commands.Result, error) {
			task, err := m.taskAt(t.Position)
			if err != nil {
				return commands.Result{}, err
			}
			m.store.ToggleComplete(task.ID)
			m.Cursor = t.Position - 1
			verb := "completed"
			if task.Completed {
				verb = "reopened"
			}
			return commands.Result{Message: fmt.Sprintf("%s: %s", verb, task.Label())}, nil
		},
		Edit: func(t commands.TargetArgs) (commands.Result, error) {
			task, err := m.taskAt(t.Position)
			if err != nil {
				return commands.Result{}, err
			}
			m.Cursor = t.Position - 1
			return commands.Result{Message: fmt.Sprintf("editing: %s", task.Label())}, m.store.OpenEdit(task)
		},
		Remove: func(t commands.TargetArgs) (commands.Result, error) {
			task, err := m.taskAt(t.Position)
			if err != nil {
				return commands.Result{}, err
			}
			m.Cursor = t.Position - 1
			return commands.Result{Message: fmt.Sprintf("delete %s?", task.Label())}, m.store.DeleteTask(task.ID)
		},
		Theme: func() (commands.Result, error) {
			if m.store.ToggleTheme() {
				return commands.Result{Message: "dark mode on"}, nil
			}
			return commands.Result{Message: "dark mode off"}, nil
		},
	})
	if errors.Is(err, model.ErrEmptyTask) {
		return m
	}
	m.report(err, res.Message)
	return m
}

func (m Model) taskAt(position int) (model.Task, error) {
	tasks := m.store.Snapshot().Tasks
	if position < 1 || position > len(tasks) {
		return model.Task{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: fmt.Sprintf("no task %d (have %d)", position, len(tasks)),
		}
	}
	return tasks[position-1], nil
}
