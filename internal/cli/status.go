package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/progress"
	"github.com/julianstephens/timecompass/internal/tui/components/dashboard"
)

const clearScreen = "\033[H\033[2J"

type StatusCmd struct {
	JSON  bool `help:"Print the progress windows as JSON."`
	Watch bool `help:"Refresh every second until interrupted."`
}

func (c *StatusCmd) Run(ctx *Context) error {
	if !c.Watch {
		return c.render(ctx)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return c.watch(sigCtx, ctx)
}

func (c *StatusCmd) watch(ctx context.Context, app *Context) error {
	ticker := app.Ticker(ctx, constants.ClockInterval)
	defer ticker.Stop()

	if err := c.render(app); err != nil {
		return err
	}
	for {
		select {
		case <-ticker.Done():
			return nil
		case <-ticker.C:
			if err := c.render(app); err != nil {
				return err
			}
		}
	}
}

func (c *StatusCmd) render(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	snap := progress.Compute(settings, ctx.Now())

	if c.JSON {
		// One object per line so --watch output can be streamed
		data, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	if c.Watch {
		ctx.Printf("%s", clearScreen)
	}
	board := dashboard.New()
	board.SetSize(80, 0)
	ctx.Println(dashboard.Header(snap))
	ctx.Println(board.View(snap))
	return nil
}
