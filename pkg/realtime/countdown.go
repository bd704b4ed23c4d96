package realtime

import "time"

// Countdown holds the timing state for a single countdown that advances one
// Interval per tick. It does not schedule anything itself; the owner feeds it
// ticks from a Task and reacts to the values Tick returns.
type Countdown struct {
	Total     time.Duration
	Interval  time.Duration
	Remaining time.Duration
	Ticks     int
	done      bool
}

// DefaultTickInterval is the usual spacing between countdown ticks.
const DefaultTickInterval = time.Second

// NewCountdown returns a running countdown with the full duration remaining.
// A non-positive interval falls back to DefaultTickInterval.
func NewCountdown(total, interval time.Duration) Countdown {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if total < 0 {
		total = 0
	}
	return Countdown{
		Total:     total,
		Interval:  interval,
		Remaining: total,
	}
}

// Tick advances the countdown by one interval. finished is true exactly once,
// on the tick that brings Remaining to zero; later ticks change nothing.
func (c *Countdown) Tick() (remaining time.Duration, finished bool) {
	if c.done {
		return 0, false
	}
	c.Ticks++
	c.Remaining -= c.Interval
	if c.Remaining <= 0 {
		c.Remaining = 0
		c.done = true
		return 0, true
	}
	return c.Remaining, false
}

// Finished reports whether the countdown has expired.
func (c *Countdown) Finished() bool {
	return c.done
}

// Units returns the remaining time rounded down to whole units.
func (c *Countdown) Units(unit time.Duration) int {
	if unit <= 0 {
		unit = time.Second
	}
	return int(c.Remaining / unit)
}

// InPanic reports whether a running countdown has reached the final
// threshold. Both sides are durations, so no unit conversion is involved.
func (c *Countdown) InPanic(threshold time.Duration) bool {
	return !c.done && c.Remaining <= threshold
}
