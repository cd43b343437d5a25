package settings

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/timecompass/internal/cli"
	"github.com/julianstephens/timecompass/internal/errors"
	"github.com/julianstephens/timecompass/internal/models"
	"github.com/julianstephens/timecompass/internal/utils"
	"github.com/julianstephens/timecompass/internal/validation"
)

type SettingsCmd struct {
	List  bool `help:"List current settings."`
	JSON  bool `help:"With --list, print the stored record as JSON."`
	Reset bool `help:"Restore every setting to its default."`

	BirthDate      *string `help:"Birth date (YYYY-MM-DD)."`
	LifeExpectancy *int    `help:"Expected lifespan in years."`
	WorkStart      *string `help:"Work window start (HH:MM)."`
	WorkEnd        *string `help:"Work window end (HH:MM)."`
	WorkDays       *string `help:"Comma-separated work days, e.g. mon,tue,wed or 1,2,3."`
	Focus          *int    `help:"Focus session length in minutes."`
	Semester1Start *string `name:"semester1-start" help:"First semester start (MM-DD)."`
	Semester1End   *string `name:"semester1-end" help:"First semester end (MM-DD)."`
	Semester2Start *string `name:"semester2-start" help:"Second semester start (MM-DD)."`
	Semester2End   *string `name:"semester2-end" help:"Second semester end (MM-DD)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		return c.list(ctx, settings)
	}

	if c.Reset {
		if err := ctx.Store.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings reset to defaults.")
		return nil
	}

	updated, err := c.apply(&settings)
	if err != nil {
		return err
	}
	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	result := validation.NewWithClock(ctx.Now).ValidateSettings(settings)
	if result.HasErrors() {
		return fmt.Errorf("%w:\n%s", errors.ErrInvalidSettings, result.FormatReport())
	}
	for _, w := range result.Warnings() {
		ctx.Warnf("⚠ %s\n", w.Description)
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}

// apply copies every flag that was given onto s.
func (c *SettingsCmd) apply(s *models.Settings) (bool, error) {
	updated := false
	var err error

	if c.BirthDate != nil {
		if s.BirthDate, err = models.ParseDate(*c.BirthDate); err != nil {
			return false, err
		}
		updated = true
	}
	if c.LifeExpectancy != nil {
		s.LifeExpectancy = *c.LifeExpectancy
		updated = true
	}
	if c.WorkStart != nil {
		if s.WorkStartTime, err = models.ParseClockTime(*c.WorkStart); err != nil {
			return false, err
		}
		updated = true
	}
	if c.WorkEnd != nil {
		if s.WorkEndTime, err = models.ParseClockTime(*c.WorkEnd); err != nil {
			return false, err
		}
		updated = true
	}
	if c.WorkDays != nil {
		days, err := utils.ParseWeekdays(*c.WorkDays)
		if err != nil {
			return false, err
		}
		s.WorkDays = models.NormalizeWorkDays(days)
		updated = true
	}
	if c.Focus != nil {
		s.FocusDuration = *c.Focus
		updated = true
	}

	monthDays := []struct {
		flag *string
		dst  *models.MonthDay
	}{
		{c.Semester1Start, &s.Semester1Start},
		{c.Semester1End, &s.Semester1End},
		{c.Semester2Start, &s.Semester2Start},
		{c.Semester2End, &s.Semester2End},
	}
	for _, md := range monthDays {
		if md.flag == nil {
			continue
		}
		if *md.dst, err = models.ParseMonthDay(*md.flag); err != nil {
			return false, err
		}
		updated = true
	}
	return updated, nil
}

func (c *SettingsCmd) list(ctx *cli.Context, s models.Settings) error {
	if c.JSON {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	ctx.Println("Current Settings:")
	ctx.Printf("  Birth Date:        %s\n", s.BirthDate)
	ctx.Printf("  Life Expectancy:   %d years\n", s.LifeExpectancy)
	ctx.Printf("  Work Window:       %s - %s\n", s.WorkStartTime, s.WorkEndTime)
	ctx.Printf("  Work Days:         %s\n", utils.FormatWeekdays(s.WorkDays))
	ctx.Printf("  Focus Duration:    %d min\n", s.FocusDuration)
	ctx.Println("\nSemesters:")
	ctx.Printf("  Semester 1:        %s to %s\n", s.Semester1Start, s.Semester1End)
	ctx.Printf("  Semester 2:        %s to %s\n", s.Semester2Start, s.Semester2End)
	ctx.Printf("\nOnboarded:           %v\n", s.HasOnboarded)
	return nil
}
