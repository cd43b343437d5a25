package constants

import "time"

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MonthDayFormat is the format for recurring annual dates (MM-DD)
	MonthDayFormat = "01-02"

	// HeaderFormat is used for the clock line in the TUI header
	HeaderFormat = "Monday, January 2, 2006 15:04:05"

	Day = 24 * time.Hour

	// DaysPerYear is the fixed year length used when converting life spans to years
	DaysPerYear = 365.25

	// DaysPerMonth is the fixed month length used for semester subtexts
	DaysPerMonth = 30
)
