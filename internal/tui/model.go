package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/timecompass/internal/clock"
	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/focus"
	"github.com/julianstephens/timecompass/internal/storage"
	"github.com/julianstephens/timecompass/internal/tui/handlers"
	"github.com/julianstephens/timecompass/internal/tui/state"
)

// ClockTickMsg drives recomputation of every progress window.
type ClockTickMsg time.Time

// Model is the bubbletea model for the dashboard.
type Model struct {
	state.Model
}

// NewModel builds the dashboard. A nil clock uses the system clock. The
// settings editor starts open until the user has onboarded.
func NewModel(store storage.Provider, clk clock.Clock, alerter focus.Alerter) Model {
	m := Model{Model: state.New(store, clk, alerter)}
	if !m.Settings.HasOnboarded {
		handlers.OpenSettings(&m.Model)
	}
	return m
}

func (m Model) ShortHelp() []key.Binding {
	return m.Keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.Keys.FullHelp()
}

func clockTick() tea.Cmd {
	return tea.Tick(constants.ClockInterval, func(t time.Time) tea.Msg {
		return ClockTickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{clockTick()}
	if m.State == constants.StateEditSettings && m.Form != nil {
		cmds = append(cmds, m.Form.Init())
	}
	return tea.Batch(cmds...)
}

// Run starts the dashboard on the current terminal.
func Run(store storage.Provider, clk clock.Clock, alerter focus.Alerter) error {
	_, err := tea.NewProgram(NewModel(store, clk, alerter), tea.WithAltScreen()).Run()
	return err
}
