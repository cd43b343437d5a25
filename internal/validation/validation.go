package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/models"
	"github.com/julianstephens/timecompass/internal/utils"
)

// ConflictType represents the kind of problem found in a settings record
type ConflictType string

const (
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictFutureBirthDate    ConflictType = "future_birth_date"
	ConflictLifeOutOfRange     ConflictType = "life_expectancy_out_of_range"
	ConflictFocusOutOfRange    ConflictType = "focus_duration_out_of_range"
	ConflictInvalidWorkDay     ConflictType = "invalid_work_day"
	ConflictNoWorkDays         ConflictType = "no_work_days"
	ConflictWorkWindowInverted ConflictType = "work_window_inverted"
	ConflictSemesterInverted   ConflictType = "semester_inverted"
)

// Severity separates problems that block saving from advisories
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict is a single problem with a settings field
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Field       string // JSON key of the offending setting
	Description string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors returns true if any conflict should block saving
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the blocking conflicts
func (vr *ValidationResult) Errors() []Conflict {
	return vr.filter(SeverityError)
}

// Warnings returns only the advisory conflicts
func (vr *ValidationResult) Warnings() []Conflict {
	return vr.filter(SeverityWarning)
}

func (vr *ValidationResult) filter(sev Severity) []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if c.Severity == sev {
			out = append(out, c)
		}
	}
	return out
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No problems detected."
	}

	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", c.Severity, c.Description)
	}
	return b.String()
}

// Validator validates settings at the persistence boundary
type Validator struct {
	now func() time.Time
}

// New creates a new Validator using the system clock
func New() *Validator {
	return &Validator{now: time.Now}
}

// NewWithClock creates a Validator that judges "future" dates against now
func NewWithClock(now func() time.Time) *Validator {
	return &Validator{now: now}
}

// ValidateSettings checks a decoded settings record
func (v *Validator) ValidateSettings(s models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	add := func(t ConflictType, sev Severity, field, format string, args ...any) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        t,
			Severity:    sev,
			Field:       field,
			Description: fmt.Sprintf(format, args...),
		})
	}

	if s.BirthDate.IsZero() {
		add(ConflictInvalidDate, SeverityError, constants.SettingBirthDate, "Birth date is not set")
	} else if s.BirthDate.In(time.Local).After(v.now()) {
		add(ConflictFutureBirthDate, SeverityError, constants.SettingBirthDate,
			"Birth date %s is in the future", s.BirthDate)
	}

	if s.LifeExpectancy < constants.MinLifeExpectancy || s.LifeExpectancy > constants.MaxLifeExpectancy {
		add(ConflictLifeOutOfRange, SeverityError, constants.SettingLifeExpectancy,
			"Life expectancy %d must be between %d and %d years",
			s.LifeExpectancy, constants.MinLifeExpectancy, constants.MaxLifeExpectancy)
	}

	if s.FocusDuration < constants.MinFocusDuration || s.FocusDuration > constants.MaxFocusDuration {
		add(ConflictFocusOutOfRange, SeverityError, constants.SettingFocusDuration,
			"Focus duration %d must be between %d and %d minutes",
			s.FocusDuration, constants.MinFocusDuration, constants.MaxFocusDuration)
	}

	for _, d := range s.WorkDays {
		if d < time.Sunday || d > time.Saturday {
			add(ConflictInvalidWorkDay, SeverityError, constants.SettingWorkDays,
				"Work day %d is not a weekday index (0-6)", int(d))
		}
	}
	if len(s.WorkDays) == 0 {
		add(ConflictNoWorkDays, SeverityWarning, constants.SettingWorkDays,
			"No work days selected, week progress will stay at 0%%")
	}

	// Inverted windows are allowed; the day calculator treats them as complete
	if s.WorkStartTime.Minutes() >= s.WorkEndTime.Minutes() {
		add(ConflictWorkWindowInverted, SeverityWarning, constants.SettingWorkEndTime,
			"Work end %s is not after work start %s, today will always show as done",
			s.WorkEndTime, s.WorkStartTime)
	}

	// Only the second semester must fit inside one calendar year
	if monthDayBefore(s.Semester2End, s.Semester2Start) {
		add(ConflictSemesterInverted, SeverityWarning, constants.SettingSemester2End,
			"Semester 2 ends (%s) before it starts (%s) and will never be current",
			s.Semester2End, s.Semester2Start)
	}

	return result
}

func monthDayBefore(a, b models.MonthDay) bool {
	if a.Month != b.Month {
		return a.Month < b.Month
	}
	return a.Day < b.Day
}

// The field validators below take raw user input and are shared by the
// settings form and the settings command.

// ValidateClockTime accepts HH:MM.
func ValidateClockTime(s string) error {
	_, err := models.ParseClockTime(strings.TrimSpace(s))
	return err
}

// ValidateBirthDate accepts a YYYY-MM-DD date that is not in the future.
func (v *Validator) ValidateBirthDate(s string) error {
	d, err := models.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if d.In(time.Local).After(v.now()) {
		return fmt.Errorf("birth date %s is in the future", d)
	}
	return nil
}

// ValidateMonthDay accepts MM-DD for any day that exists in a leap year.
func ValidateMonthDay(s string) error {
	_, err := models.ParseMonthDay(strings.TrimSpace(s))
	return err
}

// ValidateLifeExpectancy accepts a whole number of years within bounds.
func ValidateLifeExpectancy(s string) error {
	return validateIntRange(s, "life expectancy", constants.MinLifeExpectancy, constants.MaxLifeExpectancy)
}

// ValidateFocusDuration accepts a whole number of minutes within bounds.
func ValidateFocusDuration(s string) error {
	return validateIntRange(s, "focus duration", constants.MinFocusDuration, constants.MaxFocusDuration)
}

// ValidateWorkDays accepts a comma-separated weekday list, e.g. "mon,tue,fri".
func ValidateWorkDays(s string) error {
	_, err := utils.ParseWeekdays(s)
	return err
}

func validateIntRange(s, name string, lo, hi int) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%s must be a whole number", name)
	}
	if n < lo || n > hi {
		return fmt.Errorf("%s must be between %d and %d", name, lo, hi)
	}
	return nil
}
