package models

import (
	"slices"
	"time"

	"github.com/julianstephens/timecompass/internal/constants"
)

// Settings represents the user's configuration, persisted as one flat record
type Settings struct {
	BirthDate      Date           `json:"birthDate"`      // the user's birth date
	LifeExpectancy int            `json:"lifeExpectancy"` // expected lifespan in years
	WorkStartTime  ClockTime      `json:"workStartTime"`  // when the work window opens, e.g. "09:00"
	WorkEndTime    ClockTime      `json:"workEndTime"`    // when the work window closes, e.g. "18:00"
	FocusDuration  int            `json:"focusDuration"`  // focus session length in minutes
	HasOnboarded   bool           `json:"hasOnboarded"`   // whether the settings editor has been completed once
	WorkDays       []time.Weekday `json:"workDays"`       // weekdays counted as work days (0 = Sunday)
	Semester1Start MonthDay       `json:"semester1Start"` // may fall after Semester1End (crosses new year)
	Semester1End   MonthDay       `json:"semester1End"`
	Semester2Start MonthDay       `json:"semester2Start"`
	Semester2End   MonthDay       `json:"semester2End"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() Settings {
	workDays := make([]time.Weekday, 0, len(constants.DefaultWorkDays))
	for _, d := range constants.DefaultWorkDays {
		workDays = append(workDays, time.Weekday(d))
	}
	return Settings{
		BirthDate:      MustParseDate(constants.DefaultBirthDate),
		LifeExpectancy: constants.DefaultLifeExpectancy,
		WorkStartTime:  MustParseClockTime(constants.DefaultWorkStartTime),
		WorkEndTime:    MustParseClockTime(constants.DefaultWorkEndTime),
		FocusDuration:  constants.DefaultFocusDuration,
		HasOnboarded:   constants.DefaultHasOnboarded,
		WorkDays:       workDays,
		Semester1Start: MustParseMonthDay(constants.DefaultSemester1Start),
		Semester1End:   MustParseMonthDay(constants.DefaultSemester1End),
		Semester2Start: MustParseMonthDay(constants.DefaultSemester2Start),
		Semester2End:   MustParseMonthDay(constants.DefaultSemester2End),
	}
}

// IsWorkDay reports whether wd is one of the configured work days.
func (s Settings) IsWorkDay(wd time.Weekday) bool {
	return slices.Contains(s.WorkDays, wd)
}

// Semesters returns the two configured semester ranges.
func (s Settings) Semesters() SemesterRanges {
	return SemesterRanges{
		FirstStart:  s.Semester1Start,
		FirstEnd:    s.Semester1End,
		SecondStart: s.Semester2Start,
		SecondEnd:   s.Semester2End,
	}
}

// FocusSeconds is the focus duration in seconds.
func (s Settings) FocusSeconds() int {
	return s.FocusDuration * 60
}

// SemesterRanges holds the month-day bounds of the two recurring semesters.
type SemesterRanges struct {
	FirstStart  MonthDay
	FirstEnd    MonthDay
	SecondStart MonthDay
	SecondEnd   MonthDay
}
