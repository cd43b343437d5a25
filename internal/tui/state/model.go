package state

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timecompass/internal/clock"
	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/focus"
	"github.com/julianstephens/timecompass/internal/models"
	"github.com/julianstephens/timecompass/internal/progress"
	"github.com/julianstephens/timecompass/internal/quotes"
	"github.com/julianstephens/timecompass/internal/storage"
	"github.com/julianstephens/timecompass/internal/tui/components/dashboard"
	"github.com/julianstephens/timecompass/internal/tui/components/focuspanel"
	"github.com/julianstephens/timecompass/internal/tui/components/settings"
	"github.com/julianstephens/timecompass/internal/validation"
)

// SettingsFormModel holds the raw form input for the settings editor
type SettingsFormModel struct {
	BirthDate      string
	LifeExpectancy string
	WorkStartTime  string
	WorkEndTime    string
	WorkDays       []time.Weekday
	FocusDuration  string
	Semester1Start string
	Semester1End   string
	Semester2Start string
	Semester2End   string
}

// Model represents the shared state for the TUI
type Model struct {
	Store               storage.Provider
	Clock               clock.Clock
	Validator           *validation.Validator
	State               constants.SessionState
	Keys                KeyMap
	Help                help.Model
	Settings            models.Settings
	Snapshot            progress.Snapshot
	Timer               *focus.Timer
	FocusGen            int // bumped on pause and reset so stale focus ticks are dropped
	Quote               quotes.Quote
	Dashboard           dashboard.Model
	FocusPanel          focuspanel.Model
	SettingsModel       settings.Model
	Form                *huh.Form
	SettingsForm        *SettingsFormModel
	Quitting            bool
	Width               int
	Height              int
	ValidationWarning   string                // Validation warning message to display
	ValidationConflicts []validation.Conflict // Detailed conflict information
	FormError           string                // Error message to display for form operations
}

// New creates a new state Model
func New(store storage.Provider, clk clock.Clock, alerter focus.Alerter) Model {
	if clk == nil {
		clk = clock.System{}
	}

	current, err := store.GetSettings()
	if err != nil {
		current = models.DefaultSettings()
	}

	m := Model{
		Store:         store,
		Clock:         clk,
		Validator:     validation.NewWithClock(clk.Now),
		State:         constants.StateDashboard,
		Keys:          DefaultKeyMap(),
		Help:          help.New(),
		Settings:      current,
		Timer:         focus.NewTimer(current.FocusDuration, alerter),
		Quote:         quotes.Random(),
		Dashboard:     dashboard.New(),
		FocusPanel:    focuspanel.New(),
		SettingsModel: settings.New(current),
	}
	if err != nil {
		m.FormError = "Failed to load settings: " + err.Error()
	}
	m.Recompute()
	m.UpdateValidationStatus()
	return m
}

// Recompute refreshes every progress window from the clock.
func (m *Model) Recompute() {
	m.Snapshot = progress.Compute(m.Settings, m.Clock.Now())
}

// ApplySettings swaps in saved settings and resyncs the dependents.
func (m *Model) ApplySettings(s models.Settings) {
	m.Settings = s
	m.SettingsModel.SetSettings(s)
	m.Timer.SetDuration(s.FocusDuration)
	m.Recompute()
	m.UpdateValidationStatus()
}

// SetSize propagates the terminal size to the components.
func (m *Model) SetSize(width, height int) {
	m.Width = width
	m.Height = height
	m.Help.Width = width
	m.Dashboard.SetSize(width, height)
	m.FocusPanel.SetSize(width, height)
	m.SettingsModel.SetSize(width, height)
}
