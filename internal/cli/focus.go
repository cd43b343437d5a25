package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/focus"
	"github.com/julianstephens/timecompass/internal/logger"
	"github.com/julianstephens/timecompass/internal/utils"
)

type FocusCmd struct {
	Minutes int `help:"Session length in minutes. Defaults to the saved focus duration." short:"m"`

	interval time.Duration `kong:"-"`
}

func (c *FocusCmd) Run(ctx *Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return c.run(sigCtx, ctx)
}

func (c *FocusCmd) run(ctx context.Context, app *Context) error {
	minutes := c.Minutes
	if minutes == 0 {
		settings, err := app.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		minutes = settings.FocusDuration
	}
	if minutes < constants.MinFocusDuration || minutes > constants.MaxFocusDuration {
		return fmt.Errorf("focus duration must be between %d and %d minutes", constants.MinFocusDuration, constants.MaxFocusDuration)
	}

	interval := c.interval
	if interval <= 0 {
		interval = constants.FocusInterval
	}

	timer := focus.NewTimer(minutes, app.Alerter(app.out()))
	timer.Start()
	logger.Info("Focus session started", "run", timer.RunID(), "minutes", minutes)

	ticker := app.Ticker(ctx, interval)
	defer ticker.Stop()

	app.Printf("Focusing for %d min. Press Ctrl+C to stop.\n", minutes)
	app.Printf("\r%s remaining", utils.FormatCountdown(timer.Remaining()))
	for {
		select {
		case <-ticker.Done():
			app.Printf("\nFocus session stopped with %s left.\n", utils.FormatCountdown(timer.Remaining()))
			logger.Info("Focus session stopped", "run", timer.RunID(), "remaining", timer.Remaining())
			return nil
		case <-ticker.C:
			if timer.Tick() {
				app.Printf("\r%s remaining\n", utils.FormatCountdown(0))
				app.Println(constants.FocusFinishedTitle)
				return nil
			}
			app.Printf("\r%s remaining", utils.FormatCountdown(timer.Remaining()))
		}
	}
}
