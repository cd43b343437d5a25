package progress

import (
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/models"
)

// Week measures elapsed time across this week's work days. The week starts on
// Monday 00:00 regardless of locale, and every work day counts as a full 24h.
// With no work days configured the percentage is 0.
func Week(now time.Time, workDays []time.Weekday) models.TimeProgress {
	monday := StartOfWeek(now)

	var total, elapsed time.Duration
	for i := range 7 {
		dayStart := monday.AddDate(0, 0, i)
		if !slices.Contains(workDays, dayStart.Weekday()) {
			continue
		}
		total += constants.Day

		nextDay := dayStart.AddDate(0, 0, 1)
		switch {
		case !now.Before(nextDay):
			elapsed += constants.Day
		case now.After(dayStart):
			// capped so a 25h DST day cannot overshoot its budget
			elapsed += min(now.Sub(dayStart), constants.Day)
		}
	}

	pct := ratio(elapsed, total, 0)
	remaining := total - elapsed
	days := int(remaining / constants.Day)
	hours := int((remaining % constants.Day) / time.Hour)

	return models.TimeProgress{
		Percentage: pct,
		Label:      WeekLabel,
		Subtext:    fmt.Sprintf("%.1f%% of this week's work days have passed (%dd %dh left).", pct, days, hours),
		ColorClass: constants.ColorWeek,
		IsActive:   true,
	}
}

// StartOfWeek returns local midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := startOfDay(t)
	return day.AddDate(0, 0, -offset)
}
