package handlers

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/errors"
	"github.com/julianstephens/timecompass/internal/logger"
	"github.com/julianstephens/timecompass/internal/models"
	"github.com/julianstephens/timecompass/internal/tui/state"
	"github.com/julianstephens/timecompass/internal/validation"
)

// weekdayOrder lists work day options Monday first
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// NewSettingsFormModel fills the form model from saved settings
func NewSettingsFormModel(s models.Settings) *state.SettingsFormModel {
	return &state.SettingsFormModel{
		BirthDate:      s.BirthDate.String(),
		LifeExpectancy: strconv.Itoa(s.LifeExpectancy),
		WorkStartTime:  s.WorkStartTime.String(),
		WorkEndTime:    s.WorkEndTime.String(),
		WorkDays:       append([]time.Weekday(nil), s.WorkDays...),
		FocusDuration:  strconv.Itoa(s.FocusDuration),
		Semester1Start: s.Semester1Start.String(),
		Semester1End:   s.Semester1End.String(),
		Semester2Start: s.Semester2Start.String(),
		Semester2End:   s.Semester2End.String(),
	}
}

// ApplySettingsForm parses the form model over base. The result is marked
// as onboarded.
func ApplySettingsForm(fm *state.SettingsFormModel, base models.Settings) (models.Settings, error) {
	s := base
	var err error

	if s.BirthDate, err = models.ParseDate(strings.TrimSpace(fm.BirthDate)); err != nil {
		return base, err
	}
	if s.LifeExpectancy, err = strconv.Atoi(strings.TrimSpace(fm.LifeExpectancy)); err != nil {
		return base, errors.New("life expectancy must be a whole number")
	}
	if s.WorkStartTime, err = models.ParseClockTime(strings.TrimSpace(fm.WorkStartTime)); err != nil {
		return base, err
	}
	if s.WorkEndTime, err = models.ParseClockTime(strings.TrimSpace(fm.WorkEndTime)); err != nil {
		return base, err
	}
	if s.FocusDuration, err = strconv.Atoi(strings.TrimSpace(fm.FocusDuration)); err != nil {
		return base, errors.New("focus duration must be a whole number")
	}
	monthDays := []struct {
		dst *models.MonthDay
		raw string
	}{
		{&s.Semester1Start, fm.Semester1Start},
		{&s.Semester1End, fm.Semester1End},
		{&s.Semester2Start, fm.Semester2Start},
		{&s.Semester2End, fm.Semester2End},
	}
	for _, md := range monthDays {
		if *md.dst, err = models.ParseMonthDay(strings.TrimSpace(md.raw)); err != nil {
			return base, err
		}
	}

	s.WorkDays = models.NormalizeWorkDays(fm.WorkDays)
	s.HasOnboarded = true
	return s, nil
}

// NewSettingsForm creates the settings editor form
func NewSettingsForm(fm *state.SettingsFormModel, v *validation.Validator) *huh.Form {
	dayOptions := make([]huh.Option[time.Weekday], 0, len(weekdayOrder))
	for _, d := range weekdayOrder {
		dayOptions = append(dayOptions, huh.NewOption(d.String(), d))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Birth date").
				Description("YYYY-MM-DD").
				Value(&fm.BirthDate).
				Validate(v.ValidateBirthDate),
			huh.NewInput().
				Title("Life expectancy (years)").
				Value(&fm.LifeExpectancy).
				Validate(validation.ValidateLifeExpectancy),
		).Title("About you"),
		huh.NewGroup(
			huh.NewInput().
				Title("Work starts").
				Description("HH:MM").
				Value(&fm.WorkStartTime).
				Validate(validation.ValidateClockTime),
			huh.NewInput().
				Title("Work ends").
				Description("HH:MM").
				Value(&fm.WorkEndTime).
				Validate(validation.ValidateClockTime),
			huh.NewMultiSelect[time.Weekday]().
				Title("Work days").
				Options(dayOptions...).
				Value(&fm.WorkDays),
			huh.NewInput().
				Title("Focus duration (min)").
				Value(&fm.FocusDuration).
				Validate(validation.ValidateFocusDuration),
		).Title("Work"),
		huh.NewGroup(
			huh.NewInput().
				Title("Semester 1 starts").
				Description("MM-DD, may be after its end to span the new year").
				Value(&fm.Semester1Start).
				Validate(validation.ValidateMonthDay),
			huh.NewInput().
				Title("Semester 1 ends").
				Description("MM-DD").
				Value(&fm.Semester1End).
				Validate(validation.ValidateMonthDay),
			huh.NewInput().
				Title("Semester 2 starts").
				Description("MM-DD").
				Value(&fm.Semester2Start).
				Validate(validation.ValidateMonthDay),
			huh.NewInput().
				Title("Semester 2 ends").
				Description("MM-DD").
				Value(&fm.Semester2End).
				Validate(validation.ValidateMonthDay),
		).Title("Semesters"),
	).WithTheme(huh.ThemeDracula())
}

// OpenSettings switches to the settings editor
func OpenSettings(m *state.Model) tea.Cmd {
	m.FormError = ""
	m.SettingsForm = NewSettingsFormModel(m.Settings)
	m.Form = NewSettingsForm(m.SettingsForm, m.Validator)
	m.State = constants.StateEditSettings
	return m.Form.Init()
}

// HandleEditSettingsState handles the edit settings state
func HandleEditSettingsState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		// The first run must complete the form
		if !m.Settings.HasOnboarded {
			return nil
		}
		m.FormError = "" // Clear error on cancel
		m.State = constants.StateDashboard
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		newSettings, err := ApplySettingsForm(m.SettingsForm, m.Settings)
		if err != nil {
			m.FormError = "Invalid settings: " + err.Error()
			return retryForm(m, cmds)
		}

		result := m.Validator.ValidateSettings(newSettings)
		if result.HasErrors() {
			m.FormError = result.Errors()[0].Description
			return retryForm(m, cmds)
		}

		if err := m.Store.SaveSettings(newSettings); err != nil {
			// Store error and stay in form state to allow retry
			m.FormError = "Failed to update settings: " + err.Error()
			return retryForm(m, cmds)
		}
		logger.Info("Settings saved", "warnings", len(result.Warnings()))

		m.ApplySettings(newSettings)
		m.FormError = "" // Clear any previous errors
		m.State = constants.StateDashboard
	case huh.StateAborted:
		m.FormError = "" // Clear error on abort
		if !m.Settings.HasOnboarded {
			m.Quitting = true
			return tea.Quit
		}
		m.State = constants.StateDashboard
	}
	return tea.Batch(cmds...)
}

// retryForm rebuilds the form from the current input so the user can correct it
func retryForm(m *state.Model, cmds []tea.Cmd) tea.Cmd {
	m.Form = NewSettingsForm(m.SettingsForm, m.Validator)
	return tea.Batch(append(cmds, m.Form.Init())...)
}
