package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/models"
	pg "github.com/julianstephens/timecompass/internal/progress"
)

const (
	minBarWidth = 20
	maxBarWidth = 72
)

// gradients maps a color class to its bar gradient
var gradients = map[string][2]string{
	constants.ColorDay:      {"#F59E0B", "#EF4444"},
	constants.ColorWeek:     {"#10B981", "#3B82F6"},
	constants.ColorSemester: {"#8B5CF6", "#EC4899"},
	constants.ColorLife:     {"#06B6D4", "#6366F1"},
	constants.ColorRecess:   {"#4B5563", "#6B7280"},
}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	subtextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Faint(true)

	rowStyle = lipgloss.NewStyle().MarginBottom(1)
)

// Model renders the four progress windows
type Model struct {
	bars   map[string]progress.Model
	width  int
	height int
}

func New() Model {
	bars := make(map[string]progress.Model, len(gradients))
	for class, g := range gradients {
		bars[class] = progress.New(
			progress.WithGradient(g[0], g[1]),
			progress.WithoutPercentage(),
			progress.WithWidth(minBarWidth),
		)
	}
	return Model{bars: bars}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	w := min(max(width-8, minBarWidth), maxBarWidth)
	for class, bar := range m.bars {
		bar.Width = w
		m.bars[class] = bar
	}
}

// Header renders the current local date and time.
func Header(snap pg.Snapshot) string {
	return headerStyle.Render(snap.Now.Format(constants.HeaderFormat))
}

func (m Model) View(snap pg.Snapshot) string {
	rows := make([]string, 0, 4)
	for _, p := range snap.All() {
		rows = append(rows, m.row(p))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) row(p models.TimeProgress) string {
	bar, ok := m.bars[p.ColorClass]
	if !ok {
		bar = m.bars[constants.ColorDay]
	}
	pct := p.Clamped()

	title := labelStyle.Render(p.Label)
	value := percentStyle.Render(fmt.Sprintf("%5.1f%%", pct))
	sub := subtextStyle.Render(p.Subtext)
	if !p.IsActive {
		title = dimStyle.Render(p.Label)
		value = dimStyle.Render(fmt.Sprintf("%5.1f%%", pct))
		sub = dimStyle.Render(p.Subtext)
	}

	gap := max(bar.Width-lipgloss.Width(title)-lipgloss.Width(value), 1)
	line := title + strings.Repeat(" ", gap) + value

	return rowStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		line,
		bar.ViewAs(pct/100),
		sub,
	))
}
