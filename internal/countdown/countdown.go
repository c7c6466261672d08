// Package countdown owns the countdown-to-event display: a one second ticker
// scoped to the component lifetime, never a free-running global.
package countdown

import (
	"context"
	"time"
)

// Remaining is the countdown split into display components. All zero once
// the event has started.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

func (r Remaining) Zero() bool {
	return r == Remaining{}
}

// Until computes the remaining components from now to target. A target in
// the past yields the zero value.
func Until(target, now time.Time) Remaining {
	distance := target.Sub(now)
	if distance <= 0 {
		return Remaining{}
	}

	return Remaining{
		Days:    int(distance / (24 * time.Hour)),
		Hours:   int(distance/time.Hour) % 24,
		Minutes: int(distance/time.Minute) % 60,
		Seconds: int(distance/time.Second) % 60,
	}
}

// Timer recomputes the countdown every second and pushes it to the handler.
type Timer struct {
	target   time.Time
	interval time.Duration
	now      func() time.Time
}

type Option func(*Timer)

// WithInterval overrides the one second tick, for tests.
func WithInterval(interval time.Duration) Option {
	return func(t *Timer) { t.interval = interval }
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

func New(target time.Time, options ...Option) *Timer {
	t := &Timer{
		target:   target,
		interval: time.Second,
		now:      func() time.Time { return time.Now() },
	}

	for _, opt := range options {
		opt(t)
	}

	return t
}

// Run ticks until ctx is cancelled, delivering the current remaining time to
// the handler once per interval. The ticker is released on return, so the
// timer cannot leak past its owner's lifetime.
func (t *Timer) Run(ctx context.Context, handler func(Remaining)) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	handler(Until(t.target, t.now()))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			handler(Until(t.target, t.now()))
		}
	}
}
