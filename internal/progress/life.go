package progress

import (
	"fmt"
	"time"

	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/models"
)

// Life measures the span from birth to birth plus expectancy years. The
// percentage is deliberately left unclamped: it goes negative for a future
// birth date and above 100 past the expectancy, and the subtext reports those
// values as they are. Rendering clamps.
func Life(now time.Time, birth models.Date, expectancy int) models.TimeProgress {
	loc := now.Location()
	start := birth.In(loc)
	end := birth.AddYears(expectancy).In(loc)

	total := end.Sub(start)
	elapsed := now.Sub(start)
	pct := ratio(elapsed, total, 100)

	return models.TimeProgress{
		Percentage: pct,
		Label:      LifeLabel,
		Subtext: fmt.Sprintf("You have lived %.1f%% of your life (%.1f years), about %.1f years remain. Make every minute count.",
			pct, years(elapsed), years(total-elapsed)),
		ColorClass: constants.ColorLife,
		IsActive:   true,
	}
}

func years(d time.Duration) float64 {
	return d.Hours() / 24 / constants.DaysPerYear
}
