package handlers

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/focus"
	"github.com/julianstephens/timecompass/internal/tui/state"
)

// FocusTickMsg is one focus-timer second. Gen must match the model's
// current generation or the tick is stale and dropped.
type FocusTickMsg struct {
	Gen int
}

// FocusTick arms a single focus tick for the given generation.
func FocusTick(gen int) tea.Cmd {
	return tea.Tick(constants.FocusInterval, func(time.Time) tea.Msg {
		return FocusTickMsg{Gen: gen}
	})
}

// ToggleFocus starts or pauses the timer. Starting opens a new tick chain.
func ToggleFocus(m *state.Model) tea.Cmd {
	if m.Timer.Phase() == focus.Running {
		if m.Timer.Pause() {
			m.FocusGen++
		}
		return nil
	}
	if !m.Timer.Start() {
		return nil
	}
	m.FocusGen++
	return FocusTick(m.FocusGen)
}

// ResetFocus returns the timer to idle and cancels any in-flight tick.
func ResetFocus(m *state.Model) {
	m.Timer.Reset()
	m.FocusGen++
}

// HandleFocusTick advances the timer and re-arms while it keeps running.
func HandleFocusTick(m *state.Model, msg FocusTickMsg) tea.Cmd {
	if msg.Gen != m.FocusGen || m.Timer.Phase() != focus.Running {
		return nil
	}
	m.Timer.Tick()
	if m.Timer.Phase() != focus.Running {
		return nil
	}
	return FocusTick(m.FocusGen)
}
