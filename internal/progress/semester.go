package progress

import (
	"fmt"
	"time"

	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/models"
)

// Range is a closed interval of instants.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// SemesterCandidates builds the ranges anchored on now's year, in match order:
// the first semester starting this year, the first semester that started last
// year, and the second semester within this year. Bounds are local midnight
// at the start of each date.
func SemesterCandidates(now time.Time, r models.SemesterRanges) []Range {
	year := now.Year()
	loc := now.Location()
	return []Range{
		{Start: r.FirstStart.In(year, loc), End: r.FirstEnd.In(year+1, loc)},
		{Start: r.FirstStart.In(year-1, loc), End: r.FirstEnd.In(year, loc)},
		{Start: r.SecondStart.In(year, loc), End: r.SecondEnd.In(year, loc)},
	}
}

// Semester measures progress through whichever semester contains now. Outside
// every candidate range it reports a recess.
//
// Elapsed and remaining spans are expressed in fixed 30-day months. This is an
// intentional approximation and is kept as is.
func Semester(now time.Time, ranges models.SemesterRanges) models.TimeProgress {
	var current *Range
	for _, candidate := range SemesterCandidates(now, ranges) {
		if candidate.Contains(now) {
			current = &candidate
			break
		}
	}

	if current == nil {
		return models.TimeProgress{
			Percentage: 0,
			Label:      SemesterLabel,
			Subtext:    "Not in a semester right now (recess). Get some rest!",
			ColorClass: constants.ColorRecess,
			IsActive:   false,
		}
	}

	total := current.End.Sub(current.Start)
	elapsed := now.Sub(current.Start)
	pct := ratio(elapsed, total, 100)

	return models.TimeProgress{
		Percentage: pct,
		Label:      SemesterLabel,
		Subtext: fmt.Sprintf("%.1f%% of the semester has passed (%s elapsed, %s left).",
			pct, monthsDays(elapsed), monthsDays(total-elapsed)),
		ColorClass: constants.ColorSemester,
		IsActive:   true,
	}
}

// monthsDays renders d as 30-day months plus leftover days.
func monthsDays(d time.Duration) string {
	days := int(d / constants.Day)
	return fmt.Sprintf("%dmo %dd", days/constants.DaysPerMonth, days%constants.DaysPerMonth)
}
