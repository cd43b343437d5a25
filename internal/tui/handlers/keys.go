package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/timecompass/internal/tui/state"
)

// HandleGlobalKeys handles dashboard key presses
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.Keys.Toggle):
		return true, ToggleFocus(m)
	case key.Matches(msg, m.Keys.Reset):
		ResetFocus(m)
		return true, nil
	case key.Matches(msg, m.Keys.Settings):
		return true, OpenSettings(m)
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	}
	return false, nil
}
