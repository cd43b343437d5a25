package focuspanel

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timecompass/internal/focus"
	"github.com/julianstephens/timecompass/internal/utils"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	countdownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	finishedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

// Model renders the focus timer panel
type Model struct {
	bar   progress.Model
	width int
}

func New() Model {
	return Model{
		bar: progress.New(
			progress.WithGradient("#F472B6", "#A855F7"),
			progress.WithoutPercentage(),
			progress.WithWidth(30),
		),
	}
}

func (m *Model) SetSize(width, _ int) {
	m.width = width
	m.bar.Width = min(max(width-16, 20), 60)
}

// Status describes the timer phase for the panel.
func Status(t *focus.Timer) string {
	switch t.Phase() {
	case focus.Running:
		r := t.Remaining()
		return fmt.Sprintf("%d min %d s remaining, stay focused", r/60, r%60)
	case focus.Paused:
		return "Paused"
	case focus.Finished:
		return "Session complete!"
	default:
		return "Ready to focus"
	}
}

func (m Model) View(t *focus.Timer) string {
	status := statusStyle.Render(Status(t))
	if t.Phase() == focus.Finished {
		status = finishedStyle.Render(Status(t))
	}

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Focus"),
		countdownStyle.Render(utils.FormatCountdown(t.Remaining())),
		m.bar.ViewAs(t.Progress()),
		status,
	))
}
