package game

import (
	"log/slog"
	"time"

	"township/internal/config"
)

// spinWindow is the tail of each wait spent polling rather than sleeping;
// Sleep alone overshoots at high frame caps.
const spinWindow = 200 * time.Microsecond

// FPSLimiter paces the main loop to config.GetFPSLimit frames per second.
// Deadlines advance by a fixed step, so a short frame makes up for a
// slightly long one. A frame late by more than a whole step resyncs the
// schedule instead of rushing the frames after it.
type FPSLimiter struct {
	next     time.Time
	overruns int
}

// NewFPSLimiter creates a limiter; the first Wait starts the schedule.
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{}
}

// Overruns returns how many frames missed their deadline.
func (f *FPSLimiter) Overruns() int {
	return f.overruns
}

// Wait blocks until the next frame is due and returns how late the caller
// already was, or 0 if it was on time. A limit of 0 disables pacing.
func (f *FPSLimiter) Wait() time.Duration {
	limit := config.GetFPSLimit()
	if limit <= 0 {
		f.next = time.Time{}
		return 0
	}
	step := time.Second / time.Duration(limit)

	now := time.Now()
	if f.next.IsZero() {
		f.next = now
	}
	f.next = f.next.Add(step)

	late := now.Sub(f.next)
	if late <= 0 {
		sleepUntil(f.next)
		return 0
	}
	f.overruns++
	if late > step {
		slog.Debug("frame overran, resyncing",
			"late", late.Round(time.Microsecond),
			"target", step,
			"overruns", f.overruns,
		)
		f.next = now
	}
	return late
}

func sleepUntil(t time.Time) {
	for {
		d := time.Until(t)
		if d <= 0 {
			return
		}
		if d > spinWindow {
			time.Sleep(d - spinWindow)
		}
	}
}
