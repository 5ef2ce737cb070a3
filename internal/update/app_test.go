package update

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/logging"
	"github.com/sandeepkv93/taskpad/internal/persistence"
	"github.com/sandeepkv93/taskpad/internal/storage"
	"github.com/sandeepkv93/taskpad/internal/store"
)

func newTestModel(t *testing.T) (Model, *store.Store, *persistence.Adapter) {
	t.Helper()
	adapter := persistence.NewAdapter(storage.NewMemoryKV(), persistence.WithLogger(logging.Discard()))
	s := store.New(adapter, store.WithLogger(logging.Discard()))
	m := NewModel(s, WithLogger(logging.Discard()))
	t.Cleanup(m.Close)
	return m, s, adapter
}

func loaded(t *testing.T, m Model, s *store.Store) Model {
	t.Helper()
	updated, _ := m.Update(LoadedMsg{Snapshot: s.Load(context.Background())})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
func keyOf(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestNewModelDefaults(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.Mode() != ModeLoading {
		t.Fatalf("expected loading mode before load, got %q", m.Mode())
	}
	if m.Keys.Quit != "q" || m.Keys.Add != "a" {
		t.Fatalf("unexpected key map: %+v", m.Keys)
	}
	if !strings.Contains(m.View(), "loading") {
		t.Fatalf("expected loading line: %q", m.View())
	}
}

func TestKeysIgnoredUntilLoaded(t *testing.T) {
	m, s, _ := newTestModel(t)
	m = press(t, m, runes("a"))
	if _, ok := s.Snapshot().Modal.(store.Closed); !ok {
		t.Fatalf("expected no modal before load, got %#v", s.Snapshot().Modal)
	}
	m = loaded(t, m, s)
	if m.Mode() != ModeList {
		t.Fatalf("expected list mode after load, got %q", m.Mode())
	}
	if !strings.Contains(m.View(), "You can add new tasks") {
		t.Fatalf("expected empty state: %q", m.View())
	}
}

func TestAddTaskThroughForm(t *testing.T) {
	m, s, _ := newTestModel(t)
	m = loaded(t, m, s)

	m = press(t, m, runes("a"))
	if m.Mode() != ModeForm {
		t.Fatalf("expected form mode, got %q", m.Mode())
	}
	m = press(t, m, runes("Buy milk"), keyOf(tea.KeyTab), runes("2 litres"), keyOf(tea.KeyCtrlS))

	tasks := s.Snapshot().Tasks
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" || tasks[0].Desc() != "2 litres" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if m.Mode() != ModeList {
		t.Fatalf("expected form closed after save, got %q", m.Mode())
	}
	if m.titleInput.Value() != "" {
		t.Fatalf("expected inputs reset, got %q", m.titleInput.Value())
	}
}

func TestSaveEmptyFormRaisesAlert(t *testing.T) {
	m, s, _ := newTestModel(t)
	m = loaded(t, m, s)
	m = press(t, m, runes("a"), keyOf(tea.KeyCtrlS))

	if m.Mode() != ModeAlert {
		t.Fatalf("expected alert mode, got %q", m.Mode())
	}
	if !strings.Contains(m.View(), "Please enter a task title or description!") {
		t.Fatalf("expected alert text: %q", m.View())
	}
	m = press(t, m, keyOf(tea.KeyEnter))
	if m.Mode() != ModeForm {
		t.Fatalf("expected to return to the form, got %q", m.Mode())
	}
	if len(s.Snapshot().Tasks) != 0 {
		t.Fatal("expected no task added")
	}
}

func TestEscOnTypedDraftAsksToDiscard(t *testing.T) {
	m, s, _ := newTestModel(t)
	m = loaded(t, m, s)
	m = press(t, m, runes("a"), runes("half"), keyOf(tea.KeyEsc))

	if m.Mode() != ModeDialog || !strings.Contains(m.View(), "Discard Task") {
		t.Fatalf("expected discard dialog, got %q", m.Mode())
	}
	m = press(t, m, runes("n"))
	if m.Mode() != ModeForm || m.titleInput.Value() != "half" {
		t.Fatalf("expected to keep editing %q, got %q", "half", m.titleInput.Value())
	}
	m = press(t, m, keyOf(tea.KeyEsc), runes("y"))
	if m.Mode() != ModeList || len(s.Snapshot().Tasks) != 0 {
		t.Fatalf("expected draft discarded, mode %q", m.Mode())
	}
}

func TestToggleEditAndDeleteFromList(t *testing.T) {
	m, s, adapter := newTestModel(t)
	m = loaded(t, m, s)
	if _, err := s.AddTask("first", ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := s.AddTask("second", ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	updated, _ := m.Update(StoreChangedMsg{})
	m = updated.(Model)

	m = press(t, m, runes("j"), keyOf(tea.KeySpace))
	if !s.Snapshot().Tasks[1].Completed {
		t.Fatal("expected second task completed")
	}

	m = press(t, m, keyOf(tea.KeyEnter))
	if m.Mode() != ModeForm || m.titleInput.Value() != "second" {
		t.Fatalf("expected edit form seeded with title, got %q", m.titleInput.Value())
	}
	m = press(t, m, runes("!"), keyOf(tea.KeyCtrlS))
	got := s.Snapshot().Tasks[1]
	if got.Title != "second!" || !got.Completed {
		t.Fatalf("unexpected edited task: %+v", got)
	}

	m = press(t, m, keyOf(tea.KeyEnter), keyOf(tea.KeyCtrlD))
	if m.Mode() != ModeDialog || !strings.Contains(m.View(), "Delete Task") {
		t.Fatalf("expected delete dialog, got %q", m.Mode())
	}
	m = press(t, m, keyOf(tea.KeyEnter))
	tasks := s.Snapshot().Tasks
	if len(tasks) != 1 || tasks[0].Title != "first" {
		t.Fatalf("unexpected tasks after delete: %+v", tasks)
	}
	if m.Cursor != 0 {
		t.Fatalf("expected cursor clamped, got %d", m.Cursor)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := adapter.Wait(ctx); err != nil {
		t.Fatalf("wait failed: %v", err)
	}
}

func TestThemeToggleKey(t *testing.T) {
	m, s, _ := newTestModel(t)
	m = loaded(t, m, s)
	m = press(t, m, runes("t"))
	if !m.Snapshot.Dark || !strings.Contains(m.View(), "dark") {
		t.Fatal("expected dark theme")
	}
	m = press(t, m, runes("t"))
	if m.Snapshot.Dark {
		t.Fatal("expected light theme")
	}
}

func TestPaletteCommands(t *testing.T) {
	m, s, _ := newTestModel(t)
	m = loaded(t, m, s)

	m = press(t, m, runes("/"), runes("add Buy milk | 2 litres"), keyOf(tea.KeyEnter))
	if m.Status.IsError || !strings.Contains(m.Status.Text, "added: Buy milk") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	if m.Palette.Active {
		t.Fatal("expected palette closed")
	}

	m = press(t, m, runes("/"), runes("done 1"), keyOf(tea.KeyEnter))
	if !s.Snapshot().Tasks[0].Completed {
		t.Fatal("expected task completed via palette")
	}

	m = press(t, m, runes("/"), runes("done 5"), keyOf(tea.KeyEnter))
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "no task 5") {
		t.Fatalf("expected out of range error, got %+v", m.Status)
	}

	m = press(t, m, runes("/"), runes("rm 1"), keyOf(tea.KeyEnter))
	if m.Mode() != ModeDialog {
		t.Fatalf("expected delete confirmation, got %q", m.Mode())
	}
	m = press(t, m, runes("y"))
	if len(s.Snapshot().Tasks) != 0 {
		t.Fatal("expected task deleted via palette")
	}

	m = press(t, m, runes("/"), runes("bogus"), keyOf(tea.KeyEnter))
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected unknown command status, got %+v", m.Status)
	}
}

func TestPaletteRejectsBlankAddAndCloses(t *testing.T) {
	m, s, _ := newTestModel(t)
	m = loaded(t, m, s)
	m = press(t, m, runes("/"), runes("add |"), keyOf(tea.KeyEnter))
	if len(s.Snapshot().Tasks) != 0 || !strings.Contains(m.Status.Text, "invalid_argument") {
		t.Fatalf("expected blank add rejected, got %+v", m.Status)
	}
	m = press(t, m, runes("/"), keyOf(tea.KeyEsc))
	if m.Palette.Active || m.Status.Text != "command palette closed" {
		t.Fatalf("unexpected palette state: %+v", m.Status)
	}
}

func TestHelpToggle(t *testing.T) {
	m, s, _ := newTestModel(t)
	m = loaded(t, m, s)
	m = press(t, m, runes("?"))
	if !m.HelpVisible || !strings.Contains(m.View(), "toggle complete") {
		t.Fatal("expected help panel")
	}
}

func TestStoreChangeRearmsWait(t *testing.T) {
	m, s, _ := newTestModel(t)
	m = loaded(t, m, s)
	if _, err := s.AddTask("outside", ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	updated, cmd := m.Update(StoreChangedMsg{})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected wait command re-armed")
	}
	if len(m.Snapshot.Tasks) != 1 {
		t.Fatalf("expected snapshot refreshed, got %d tasks", len(m.Snapshot.Tasks))
	}
}

func TestQuitKey(t *testing.T) {
	m, s, _ := newTestModel(t)
	m = loaded(t, m, s)
	updated, cmd := m.Update(runes("q"))
	next := updated.(Model)
	if !next.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}

func TestPreviewRendersSelectedDescription(t *testing.T) {
	m, s, _ := newTestModel(t)
	m = loaded(t, m, s)
	if _, err := s.AddTask("with notes", "remember the **oat** kind"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	updated, _ := m.Update(StoreChangedMsg{})
	m = updated.(Model)
	if !strings.Contains(m.preview, "oat") {
		t.Fatalf("expected rendered preview, got %q", m.preview)
	}
}
