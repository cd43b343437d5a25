// Package clock supplies the current time and a cancellable one-second ticker.
package clock

import (
	"context"
	"sync"
	"time"
)

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

// System is the host's local wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// Func adapts a function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// Ticker delivers the clock's time on C every interval until its context is
// cancelled or Stop is called. Stop is idempotent.
type Ticker struct {
	C <-chan time.Time

	stop context.CancelFunc
	once sync.Once
	done chan struct{}
}

// NewTicker starts a ticker bound to ctx.
func NewTicker(ctx context.Context, c Clock, interval time.Duration) *Ticker {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan time.Time, 1)
	t := &Ticker{C: out, stop: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		tk := time.NewTicker(interval)
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
				select {
				case out <- c.Now():
				default:
				}
			}
		}
	}()

	return t
}

// Stop cancels the ticker and waits for its goroutine to exit.
func (t *Ticker) Stop() {
	t.once.Do(t.stop)
	<-t.done
}

// Done is closed once the ticker has stopped.
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}
