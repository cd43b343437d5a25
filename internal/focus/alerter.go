package focus

import (
	"fmt"
	"io"
	"sync"

	"github.com/julianstephens/timecompass/internal/logger"
)

// Permission mirrors the desktop notification permission model.
type Permission int

const (
	PermissionDefault Permission = iota
	Granted
	Denied
)

func (p Permission) String() string {
	switch p {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return "default"
	}
}

// Alerter is the side-effect capability the timer fires on completion.
// Errors returned by an Alerter are logged and never change timer state.
type Alerter interface {
	RequestPermission() error
	Permission() Permission
	Notify(title, body string) error
	EmitTone() error
}

// NopAlerter does nothing and reports permission as denied.
type NopAlerter struct{}

func (NopAlerter) RequestPermission() error { return nil }

func (NopAlerter) Permission() Permission { return Denied }

func (NopAlerter) Notify(string, string) error { return nil }

func (NopAlerter) EmitTone() error { return nil }

// Sender delivers a desktop notification.
type Sender interface {
	Available() bool
	Send(title, body string) error
}

// SystemAlerter rings the terminal bell and forwards notifications to a
// Sender. Permission is granted when the sender is reachable; with the
// notifier Sender that means a timecompass-tray companion must be running,
// otherwise only the bell sounds.
type SystemAlerter struct {
	sender Sender
	tone   io.Writer

	mu   sync.Mutex
	perm Permission
}

// NewSystemAlerter builds an alerter. Either argument may be nil to disable
// that side effect.
func NewSystemAlerter(sender Sender, tone io.Writer) *SystemAlerter {
	return &SystemAlerter{sender: sender, tone: tone}
}

// RequestPermission resolves the permission once; later calls keep the
// first answer.
func (a *SystemAlerter) RequestPermission() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requestLocked()
}

func (a *SystemAlerter) requestLocked() error {
	if a.perm != PermissionDefault {
		return nil
	}
	if a.sender == nil || !a.sender.Available() {
		a.perm = Denied
		return nil
	}
	a.perm = Granted
	return nil
}

func (a *SystemAlerter) Permission() Permission {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.perm
}

// Notify sends the notification, requesting permission first if it has
// never been asked for.
func (a *SystemAlerter) Notify(title, body string) error {
	a.mu.Lock()
	if err := a.requestLocked(); err != nil {
		a.mu.Unlock()
		return err
	}
	perm := a.perm
	a.mu.Unlock()

	if perm != Granted {
		return nil
	}
	if err := a.sender.Send(title, body); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// EmitTone writes the terminal bell.
func (a *SystemAlerter) EmitTone() error {
	if a.tone == nil {
		return nil
	}
	if _, err := io.WriteString(a.tone, "\a"); err != nil {
		return fmt.Errorf("failed to emit tone: %w", err)
	}
	return nil
}

// AsyncAlerter runs Notify and EmitTone on their own goroutines so a slow
// sender never blocks the caller. Errors are logged.
type AsyncAlerter struct {
	Alerter
	wg sync.WaitGroup
}

func NewAsyncAlerter(inner Alerter) *AsyncAlerter {
	return &AsyncAlerter{Alerter: inner}
}

func (a *AsyncAlerter) Notify(title, body string) error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.Alerter.Notify(title, body); err != nil {
			logger.Warn("Async notification failed", "error", err)
		}
	}()
	return nil
}

func (a *AsyncAlerter) EmitTone() error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.Alerter.EmitTone(); err != nil {
			logger.Debug("Async tone failed", "error", err)
		}
	}()
	return nil
}

// Wait blocks until every pending side effect has completed.
func (a *AsyncAlerter) Wait() {
	a.wg.Wait()
}
