package progress

import (
	"fmt"
	"time"

	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/models"
)

// Day measures the work window between start and end on now's calendar day.
// Before start it is 0 and inactive; after end it is 100 and active. A
// zero-length window counts as already complete.
func Day(now time.Time, start, end models.ClockTime) models.TimeProgress {
	startAt := start.On(now)
	endAt := end.On(now)

	p := models.TimeProgress{
		Label:      DayLabel,
		ColorClass: constants.ColorDay,
	}

	switch {
	case now.Before(startAt):
		p.Percentage = 0
		p.Subtext = fmt.Sprintf("Work starts at %s.", start)
	case now.After(endAt) || !endAt.After(startAt):
		p.Percentage = 100
		p.IsActive = true
		p.Subtext = "Today's work is done."
	default:
		elapsed := now.Sub(startAt)
		remaining := endAt.Sub(now)
		p.Percentage = ratio(elapsed, endAt.Sub(startAt), 100)
		p.IsActive = true
		p.Subtext = fmt.Sprintf("%s elapsed, %s remaining.", hoursMinutes(elapsed), hoursMinutes(remaining))
	}

	return p
}

// hoursMinutes formats d as whole hours and minutes, truncating seconds.
func hoursMinutes(d time.Duration) string {
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %dm", h, m)
}
