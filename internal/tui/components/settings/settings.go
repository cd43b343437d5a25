package settings

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timecompass/internal/models"
	"github.com/julianstephens/timecompass/internal/utils"
)

type Model struct {
	settings models.Settings
	width    int
	height   int
}

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	separator = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Render("  |  ")
)

func New(settings models.Settings) Model {
	return Model{settings: settings}
}

func (m *Model) SetSettings(settings models.Settings) {
	m.settings = settings
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders a one-line summary of the active settings.
func (m Model) View() string {
	s := m.settings
	item := func(label, value string) string {
		return labelStyle.Render(label+" ") + valueStyle.Render(value)
	}

	line := item("Work", fmt.Sprintf("%s-%s", s.WorkStartTime, s.WorkEndTime)) +
		separator + item("Days", utils.FormatWeekdays(s.WorkDays)) +
		separator + item("Focus", fmt.Sprintf("%dm", s.FocusDuration)) +
		separator + item("Life", fmt.Sprintf("%dy", s.LifeExpectancy))

	if m.width > 0 && lipgloss.Width(line) > m.width {
		line = item("Work", fmt.Sprintf("%s-%s", s.WorkStartTime, s.WorkEndTime)) +
			separator + item("Focus", fmt.Sprintf("%dm", s.FocusDuration))
	}
	return line
}
