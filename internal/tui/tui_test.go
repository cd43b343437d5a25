package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/timecompass/internal/clock"
	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/focus"
	"github.com/julianstephens/timecompass/internal/progress"
	"github.com/julianstephens/timecompass/internal/storage"
	"github.com/julianstephens/timecompass/internal/tui/handlers"
)

var testNow = time.Date(2024, time.March, 6, 12, 0, 0, 0, time.Local)

func newStore(t *testing.T, onboarded bool) *storage.JSONStore {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "settings.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if onboarded {
		s, err := store.GetSettings()
		if err != nil {
			t.Fatal(err)
		}
		s.HasOnboarded = true
		s.FocusDuration = 1
		if err := store.SaveSettings(s); err != nil {
			t.Fatal(err)
		}
	}
	return store
}

func newTestModel(t *testing.T, onboarded bool) Model {
	t.Helper()
	return NewModel(newStore(t, onboarded), clock.Fixed(testNow), focus.NopAlerter{})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out, cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestNewModel_OpensSettingsUntilOnboarded(t *testing.T) {
	m := newTestModel(t, false)
	if m.State != constants.StateEditSettings {
		t.Fatalf("State = %v, want settings editor", m.State)
	}
	if m.Form == nil {
		t.Fatal("expected a settings form")
	}

	m, _ = update(t, m, escKey)
	if m.State != constants.StateEditSettings {
		t.Error("esc must not dismiss the first-run settings form")
	}
	if !strings.Contains(m.View(), "Welcome") {
		t.Error("first-run form should show the welcome title")
	}
}

func TestNewModel_FirstRunOpensOnboarding(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "timecompass.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := storage.LoadOrInit(store); err != nil {
		t.Fatalf("LoadOrInit failed: %v", err)
	}
	defer store.Close()

	m := NewModel(store, clock.Fixed(testNow), focus.NopAlerter{})
	if m.State != constants.StateEditSettings || m.Form == nil {
		t.Fatalf("State = %v, want the onboarding form on a fresh store", m.State)
	}
	if !strings.Contains(m.View(), "Welcome") {
		t.Error("first-run form should show the welcome title")
	}
}

func TestNewModel_Onboarded(t *testing.T) {
	m := newTestModel(t, true)
	if m.State != constants.StateDashboard {
		t.Fatalf("State = %v, want dashboard", m.State)
	}
	want := progress.Compute(m.Settings, testNow)
	if m.Snapshot != want {
		t.Errorf("Snapshot = %+v, want %+v", m.Snapshot, want)
	}
	if m.Timer.Remaining() != 60 {
		t.Errorf("Remaining = %d, want 60", m.Timer.Remaining())
	}
}

func TestUpdate_SettingsKeyAndEsc(t *testing.T) {
	m := newTestModel(t, true)

	m, cmd := update(t, m, keyRune('s'))
	if m.State != constants.StateEditSettings {
		t.Fatalf("State = %v, want settings editor", m.State)
	}
	if cmd == nil {
		t.Error("opening the form should return its init command")
	}

	m, _ = update(t, m, escKey)
	if m.State != constants.StateDashboard {
		t.Errorf("esc should close the editor once onboarded, State = %v", m.State)
	}
}

func TestUpdate_FocusTicks(t *testing.T) {
	m := newTestModel(t, true)

	m, cmd := update(t, m, spaceKey)
	if m.Timer.Phase() != focus.Running {
		t.Fatalf("Phase = %v, want running", m.Timer.Phase())
	}
	if cmd == nil {
		t.Fatal("starting should arm a focus tick")
	}
	gen := m.FocusGen

	m, cmd = update(t, m, handlers.FocusTickMsg{Gen: gen})
	if m.Timer.Remaining() != 59 {
		t.Errorf("Remaining = %d, want 59", m.Timer.Remaining())
	}
	if cmd == nil {
		t.Error("a running timer should re-arm")
	}

	// pause drops the tick already in flight
	m, _ = update(t, m, spaceKey)
	if m.Timer.Phase() != focus.Paused {
		t.Fatalf("Phase = %v, want paused", m.Timer.Phase())
	}
	m, cmd = update(t, m, handlers.FocusTickMsg{Gen: gen})
	if m.Timer.Remaining() != 59 || cmd != nil {
		t.Errorf("stale tick applied: remaining %d, cmd %v", m.Timer.Remaining(), cmd != nil)
	}

	m, _ = update(t, m, spaceKey)
	for range 59 {
		m, _ = update(t, m, handlers.FocusTickMsg{Gen: m.FocusGen})
	}
	if m.Timer.Phase() != focus.Finished {
		t.Errorf("Phase = %v, want finished", m.Timer.Phase())
	}

	m, _ = update(t, m, keyRune('r'))
	if m.Timer.Phase() != focus.Idle || m.Timer.Remaining() != 60 {
		t.Errorf("after reset: %v %d", m.Timer.Phase(), m.Timer.Remaining())
	}
}

func TestUpdate_ClockTickRecomputes(t *testing.T) {
	now := testNow
	store := newStore(t, true)
	m := NewModel(store, clock.Func(func() time.Time { return now }), nil)

	now = now.Add(2 * time.Hour)
	m, cmd := update(t, m, ClockTickMsg(now))
	if cmd == nil {
		t.Error("clock tick should re-arm")
	}
	if !m.Snapshot.Now.Equal(now) {
		t.Errorf("Snapshot.Now = %v, want %v", m.Snapshot.Now, now)
	}
}

func TestUpdate_ClockTicksDuringSettingsForm(t *testing.T) {
	m := newTestModel(t, false)
	m, cmd := update(t, m, ClockTickMsg(testNow))
	if cmd == nil {
		t.Error("clock must keep ticking under the form")
	}
	if m.State != constants.StateEditSettings {
		t.Errorf("State = %v", m.State)
	}
}

func TestUpdate_Quit(t *testing.T) {
	m := newTestModel(t, true)
	m, cmd := update(t, m, keyRune('q'))
	if !m.Quitting || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestView_Dashboard(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	for _, want := range []string{
		progress.DayLabel,
		progress.WeekLabel,
		progress.LifeLabel,
		"Focus",
		"01:00",
		m.Quote.Author,
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
