package handlers

import (
	"path/filepath"
	"slices"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timecompass/internal/clock"
	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/focus"
	"github.com/julianstephens/timecompass/internal/models"
	"github.com/julianstephens/timecompass/internal/storage"
	"github.com/julianstephens/timecompass/internal/tui/state"
)

func newState(t *testing.T) (state.Model, *storage.JSONStore) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "settings.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, time.March, 6, 12, 0, 0, 0, time.Local)
	return state.New(store, clock.Fixed(now), focus.NopAlerter{}), store
}

func TestSettingsFormRoundTrip(t *testing.T) {
	base := models.DefaultSettings()
	fm := NewSettingsFormModel(base)

	got, err := ApplySettingsForm(fm, base)
	if err != nil {
		t.Fatalf("ApplySettingsForm failed: %v", err)
	}
	if !got.HasOnboarded {
		t.Error("saving the form should mark the user as onboarded")
	}
	got.HasOnboarded = base.HasOnboarded
	if got.BirthDate != base.BirthDate || got.Semesters() != base.Semesters() ||
		got.WorkStartTime != base.WorkStartTime || !slices.Equal(got.WorkDays, base.WorkDays) {
		t.Errorf("round trip changed settings: %+v", got)
	}
}

func TestApplySettingsForm_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*state.SettingsFormModel)
	}{
		{"birth date", func(fm *state.SettingsFormModel) { fm.BirthDate = "1990/01/01" }},
		{"life", func(fm *state.SettingsFormModel) { fm.LifeExpectancy = "many" }},
		{"start", func(fm *state.SettingsFormModel) { fm.WorkStartTime = "9" }},
		{"focus", func(fm *state.SettingsFormModel) { fm.FocusDuration = "" }},
		{"semester", func(fm *state.SettingsFormModel) { fm.Semester2End = "06-31" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := models.DefaultSettings()
			fm := NewSettingsFormModel(base)
			tt.mutate(fm)
			if _, err := ApplySettingsForm(fm, base); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestApplySettingsForm_NormalizesWorkDays(t *testing.T) {
	base := models.DefaultSettings()
	fm := NewSettingsFormModel(base)
	fm.WorkDays = []time.Weekday{time.Saturday, time.Monday, time.Saturday}

	got, err := ApplySettingsForm(fm, base)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got.WorkDays, []time.Weekday{time.Monday, time.Saturday}) {
		t.Errorf("WorkDays = %v", got.WorkDays)
	}
}

func TestHandleEditSettingsState_SavesOnCompletion(t *testing.T) {
	m, store := newState(t)
	OpenSettings(&m)
	m.SettingsForm.FocusDuration = "30"
	m.SettingsForm.LifeExpectancy = "95"

	m.Form.State = huh.StateCompleted
	HandleEditSettingsState(&m, struct{}{})

	if m.State != constants.StateDashboard {
		t.Fatalf("State = %v, want dashboard (error %q)", m.State, m.FormError)
	}
	saved, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if !saved.HasOnboarded || saved.FocusDuration != 30 || saved.LifeExpectancy != 95 {
		t.Errorf("saved = %+v", saved)
	}
	if m.Timer.Remaining() != 30*60 {
		t.Errorf("idle timer should resync, Remaining = %d", m.Timer.Remaining())
	}
}

func TestHandleEditSettingsState_RejectsInvalid(t *testing.T) {
	m, store := newState(t)
	OpenSettings(&m)
	m.SettingsForm.LifeExpectancy = "0"

	m.Form.State = huh.StateCompleted
	HandleEditSettingsState(&m, struct{}{})

	if m.State != constants.StateEditSettings {
		t.Error("invalid settings should keep the form open")
	}
	if m.FormError == "" {
		t.Error("expected a form error")
	}
	if m.Form.State != huh.StateNormal {
		t.Error("form should be ready for another attempt")
	}
	saved, _ := store.GetSettings()
	if saved.HasOnboarded {
		t.Error("nothing should have been saved")
	}
}

func TestHandleEditSettingsState_AbortBeforeOnboardingQuits(t *testing.T) {
	m, _ := newState(t)
	OpenSettings(&m)
	m.Form.State = huh.StateAborted

	cmd := HandleEditSettingsState(&m, struct{}{})
	if !m.Quitting || cmd == nil {
		t.Error("aborting the first-run form should quit")
	}
}

func TestFocusTickGenerations(t *testing.T) {
	m, _ := newState(t)

	if cmd := ToggleFocus(&m); cmd == nil {
		t.Fatal("start should arm a tick")
	}
	first := m.FocusGen

	ResetFocus(&m)
	if cmd := HandleFocusTick(&m, FocusTickMsg{Gen: first}); cmd != nil {
		t.Error("tick from before reset should be dropped")
	}
	if m.Timer.Phase() != focus.Idle {
		t.Errorf("Phase = %v", m.Timer.Phase())
	}
}

func TestHandleGlobalKeys_Help(t *testing.T) {
	m, _ := newState(t)
	handled, _ := HandleGlobalKeys(&m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !handled || !m.Help.ShowAll {
		t.Error("? should expand help")
	}
	handled, _ = HandleGlobalKeys(&m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if handled {
		t.Error("unbound key should not be handled")
	}
}
