package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/tui/components/dashboard"
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	if m.State == constants.StateEditSettings && m.Form != nil {
		return docStyle.Render(m.viewSettingsForm())
	}
	return docStyle.Render(m.viewDashboard())
}

func (m Model) viewDashboard() string {
	sections := []string{
		dashboard.Header(m.Snapshot),
		m.Dashboard.View(m.Snapshot),
		m.FocusPanel.View(m.Timer),
	}

	if m.ValidationWarning != "" {
		sections = append(sections, warningStyle.Render(m.ValidationWarning))
	}
	if m.FormError != "" {
		sections = append(sections, dangerStyle.Render(m.FormError))
	}

	sections = append(sections,
		m.SettingsModel.View(),
		quoteStyle.Render(m.Quote.String()),
		m.Help.View(m),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewSettingsForm() string {
	title := "Settings"
	hint := "esc to cancel"
	if !m.Settings.HasOnboarded {
		title = "Welcome to timecompass"
		hint = "Fill in your details to get started"
	}

	sections := []string{formTitleStyle.Render(title)}
	if m.FormError != "" {
		sections = append(sections, dangerStyle.Render(m.FormError))
	}
	sections = append(sections, m.Form.View(), warningStyle.Render(hint))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
