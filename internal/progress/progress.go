// Package progress computes how far "now" has advanced through the day, week,
// semester and life windows. Every calculator is a pure function of its
// inputs; callers pass the current instant rather than reading the clock.
package progress

import (
	"time"

	"github.com/julianstephens/timecompass/internal/models"
)

// Labels shown for each window
const (
	DayLabel      = "Today's Work"
	WeekLabel     = "This Week's Work Days"
	SemesterLabel = "Semester"
	LifeLabel     = "Life"
)

// Snapshot is every window computed for one instant.
type Snapshot struct {
	Now      time.Time           `json:"now"`
	Day      models.TimeProgress `json:"day"`
	Week     models.TimeProgress `json:"week"`
	Semester models.TimeProgress `json:"semester"`
	Life     models.TimeProgress `json:"life"`
}

// Compute runs all four calculators against the settings at now.
func Compute(settings models.Settings, now time.Time) Snapshot {
	return Snapshot{
		Now:      now,
		Day:      Day(now, settings.WorkStartTime, settings.WorkEndTime),
		Week:     Week(now, settings.WorkDays),
		Semester: Semester(now, settings.Semesters()),
		Life:     Life(now, settings.BirthDate, settings.LifeExpectancy),
	}
}

// All returns the windows in display order.
func (s Snapshot) All() []models.TimeProgress {
	return []models.TimeProgress{s.Day, s.Week, s.Semester, s.Life}
}

// ratio returns part/whole as a percentage, or fallback when whole is not positive.
func ratio(part, whole time.Duration, fallback float64) float64 {
	if whole <= 0 {
		return fallback
	}
	return float64(part) / float64(whole) * 100
}

// startOfDay returns local midnight of t's calendar day.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
