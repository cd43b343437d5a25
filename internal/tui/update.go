package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/tui/handlers"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Timers keep running underneath the settings editor
	switch msg := msg.(type) {
	case ClockTickMsg:
		m.Recompute()
		return m, clockTick()
	case handlers.FocusTickMsg:
		return m, handlers.HandleFocusTick(&m.Model, msg)
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		if m.State == constants.StateEditSettings {
			return m, handlers.HandleEditSettingsState(&m.Model, msg)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
	}

	// Handle Edit Settings State
	if m.State == constants.StateEditSettings {
		return m, handlers.HandleEditSettingsState(&m.Model, msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := handlers.HandleGlobalKeys(&m.Model, msg); handled {
			return m, cmd
		}
	}
	return m, nil
}
