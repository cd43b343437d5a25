package utils

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers
// (0=Sunday .. 6=Saturday). An empty string yields no days.
func ParseWeekdays(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return []time.Weekday{}, nil
	}

	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := weekdayNames[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, time.Weekday(num))
	}
	return weekdays, nil
}

// FormatWeekdays renders weekdays as short names in Monday-first order.
func FormatWeekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return "none"
	}
	ordered := slices.Clone(days)
	slices.SortFunc(ordered, func(a, b time.Weekday) int {
		return (int(a)+6)%7 - (int(b)+6)%7
	})
	names := make([]string, len(ordered))
	for i, d := range ordered {
		names[i] = d.String()[:3]
	}
	return strings.Join(names, ",")
}

// FormatCountdown renders seconds as MM:SS. Minutes are not wrapped at 60.
func FormatCountdown(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
