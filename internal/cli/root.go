package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/timecompass/internal/backup"
	"github.com/julianstephens/timecompass/internal/clock"
	"github.com/julianstephens/timecompass/internal/errors"
	"github.com/julianstephens/timecompass/internal/focus"
	"github.com/julianstephens/timecompass/internal/logger"
	"github.com/julianstephens/timecompass/internal/notifier"
	"github.com/julianstephens/timecompass/internal/storage"
)

type Context struct {
	Store storage.Provider
	Clock clock.Clock

	Out io.Writer
	Err io.Writer
	In  io.Reader

	// Sender delivers desktop notifications; nil disables them
	Sender focus.Sender
}

// NewContext wires a store to the process's standard streams, system clock
// and tray notifier.
func NewContext(store storage.Provider) *Context {
	return &Context{
		Store:  store,
		Clock:  clock.System{},
		Out:    os.Stdout,
		Err:    os.Stderr,
		In:     os.Stdin,
		Sender: notifier.New(),
	}
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) errOut() io.Writer {
	if c.Err == nil {
		return os.Stderr
	}
	return c.Err
}

// Warnf writes an advisory line to the error stream.
func (c *Context) Warnf(format string, args ...any) {
	fmt.Fprintf(c.errOut(), format, args...)
}

func (c *Context) clock() clock.Clock {
	if c.Clock == nil {
		return clock.System{}
	}
	return c.Clock
}

// Now reads the context's clock.
func (c *Context) Now() time.Time {
	return c.clock().Now()
}

// Ticker starts a clock.Ticker on the context's clock.
func (c *Context) Ticker(ctx context.Context, interval time.Duration) *clock.Ticker {
	return clock.NewTicker(ctx, c.clock(), interval)
}

// Alerter builds the tone and notification capability for a focus session.
// The tone is the terminal bell written to tone.
func (c *Context) Alerter(tone io.Writer) focus.Alerter {
	if c.Sender == nil {
		return focus.NewSystemAlerter(silentSender{}, tone)
	}
	return focus.NewSystemAlerter(c.Sender, tone)
}

type silentSender struct{}

func (silentSender) Available() bool { return false }

func (silentSender) Send(string, string) error { return notifier.ErrTrayNotRunning }

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		if errors.Is(err, backup.ErrUnsupported) {
			logger.Debug("Skipping automatic backup", "reason", err)
			return
		}
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
