package realtime

import "time"

// DefaultTickInterval is the usual countdown step.
const DefaultTickInterval = time.Second

// Countdown counts whole ticks down from Total to zero. It holds no game
// state; a session composes it and reacts to Advance(now).
type Countdown struct {
	Total     int
	Interval  time.Duration
	Remaining int
	NextTick  time.Time // zero while stopped
}

// NewCountdown returns a stopped countdown with Remaining set to total.
func NewCountdown(total int, interval time.Duration) Countdown {
	if total < 0 {
		total = 0
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return Countdown{Total: total, Interval: interval, Remaining: total}
}

// Start resets Remaining to Total and schedules the first tick one interval
// after now.
func (c *Countdown) Start(now time.Time) {
	if c.Interval <= 0 {
		c.Interval = DefaultTickInterval
	}
	c.Remaining = c.Total
	if c.Remaining == 0 {
		c.NextTick = time.Time{}
		return
	}
	c.NextTick = now.Add(c.Interval)
}

// Stop cancels pending ticks and freezes Remaining.
func (c *Countdown) Stop() {
	c.NextTick = time.Time{}
}

// Running reports whether ticks are still scheduled.
func (c *Countdown) Running() bool {
	return !c.NextTick.IsZero()
}

// Advance applies every tick due at or before now. Missed ticks are caught up
// one interval at a time, so Remaining only ever decreases by whole steps.
// expired is true when this call took Remaining to zero.
func (c *Countdown) Advance(now time.Time) (ticked int, expired bool) {
	for c.Running() && !now.Before(c.NextTick) && c.Remaining > 0 {
		c.Remaining--
		ticked++
		c.NextTick = c.NextTick.Add(c.Interval)
	}
	if c.Running() && c.Remaining == 0 {
		c.NextTick = time.Time{}
		expired = true
	}
	return ticked, expired
}

// NextWake returns the next tick time, or (zero, false) when stopped.
func (c *Countdown) NextWake() (time.Time, bool) {
	if !c.Running() {
		return time.Time{}, false
	}
	return c.NextTick, true
}
