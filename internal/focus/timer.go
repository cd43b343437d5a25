// Package focus implements the countdown focus timer.
package focus

import (
	"github.com/google/uuid"

	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/logger"
)

// Phase is the lifecycle state of a Timer.
type Phase int

const (
	Idle Phase = iota
	Running
	Paused
	Finished
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Timer is a single-owner countdown state machine. It never reads the clock;
// the owner calls Tick once per elapsed second while the timer is running.
type Timer struct {
	phase     Phase
	remaining int
	total     int

	// minutes applied on the next Reset when changed mid-run
	minutes int

	runID       string
	alerter     Alerter
	permAsked   bool
	finishFired bool
}

// NewTimer returns an idle timer for a session of the given minutes.
// A nil alerter disables tone and notification.
func NewTimer(minutes int, alerter Alerter) *Timer {
	if alerter == nil {
		alerter = NopAlerter{}
	}
	t := &Timer{minutes: minutes, alerter: alerter}
	t.resync()
	return t
}

func (t *Timer) resync() {
	t.total = max(t.minutes, 0) * 60
	t.remaining = t.total
}

// Phase returns the current phase.
func (t *Timer) Phase() Phase { return t.phase }

// Remaining returns the seconds left, never negative.
func (t *Timer) Remaining() int { return t.remaining }

// Total returns the length of the current session in seconds.
func (t *Timer) Total() int { return t.total }

// RunID identifies the current session; empty until the first Start.
func (t *Timer) RunID() string { return t.runID }

// Progress is the elapsed fraction of the session in [0,1].
func (t *Timer) Progress() float64 {
	if t.total <= 0 {
		return 1
	}
	return float64(t.total-t.remaining) / float64(t.total)
}

// Start moves an idle or paused timer to Running. It is a no-op when already
// running, finished, or when nothing remains. The first Start asks the
// alerter for notification permission.
func (t *Timer) Start() bool {
	if t.phase == Running || t.phase == Finished || t.remaining <= 0 {
		return false
	}

	if !t.permAsked {
		t.permAsked = true
		if err := t.alerter.RequestPermission(); err != nil {
			logger.Debug("Notification permission request failed", "error", err)
		}
	}

	if t.phase == Idle {
		t.runID = uuid.NewString()
		t.finishFired = false
		logger.Debug("Focus session started", "run", t.runID, "seconds", t.remaining)
	} else {
		logger.Debug("Focus session resumed", "run", t.runID, "remaining", t.remaining)
	}
	t.phase = Running
	return true
}

// Pause moves a running timer to Paused. No-op otherwise.
func (t *Timer) Pause() bool {
	if t.phase != Running {
		return false
	}
	t.phase = Paused
	logger.Debug("Focus session paused", "run", t.runID, "remaining", t.remaining)
	return true
}

// Toggle starts an idle or paused timer and pauses a running one.
func (t *Timer) Toggle() bool {
	if t.phase == Running {
		return t.Pause()
	}
	return t.Start()
}

// Tick consumes one second. When the countdown reaches zero the timer moves
// to Finished and fires the tone and notification, exactly once per session.
// It reports whether the tick finished the session.
func (t *Timer) Tick() bool {
	if t.phase != Running {
		return false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining > 0 {
		return false
	}

	t.phase = Finished
	logger.Info("Focus session finished", "run", t.runID, "seconds", t.total)
	t.fireFinish()
	return true
}

func (t *Timer) fireFinish() {
	if t.finishFired {
		return
	}
	t.finishFired = true

	if err := t.alerter.EmitTone(); err != nil {
		logger.Debug("Failed to emit finish tone", "error", err)
	}
	if t.alerter.Permission() != Granted {
		return
	}
	if err := t.alerter.Notify(constants.FocusFinishedTitle, constants.FocusFinishedBody); err != nil {
		logger.Warn("Failed to send focus notification", "run", t.runID, "error", err)
	}
}

// Reset returns the timer to Idle with the full current duration.
func (t *Timer) Reset() {
	t.phase = Idle
	t.runID = ""
	t.finishFired = false
	t.resync()
}

// SetDuration changes the session length. An idle timer picks it up at once;
// otherwise it takes effect on the next Reset.
func (t *Timer) SetDuration(minutes int) {
	t.minutes = minutes
	if t.phase == Idle {
		t.resync()
	}
}
