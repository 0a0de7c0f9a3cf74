package engine

import "time"

// After returns a one-shot task that calls fn once d has elapsed
func After(d time.Duration, fn func()) Task {
	var elapsed time.Duration
	return TaskFunc(func(dt time.Duration) bool {
		elapsed += dt
		if elapsed < d {
			return true
		}
		fn()
		return false
	})
}

// Every returns a repeating task firing fn once per interval
// Large dt fires fn for each interval crossed; fn returning false stops the task
func Every(interval time.Duration, fn func() bool) Task {
	if interval <= 0 {
		interval = time.Millisecond
	}
	var acc time.Duration
	return TaskFunc(func(dt time.Duration) bool {
		acc += dt
		for acc >= interval {
			acc -= interval
			if !fn() {
				return false
			}
		}
		return true
	})
}

// Countdown tracks time left before a timed phase fires
// Overshoot past zero is kept, so a rearmed countdown stays on cadence
type Countdown struct {
	left time.Duration
}

// NewCountdown starts a countdown of d
func NewCountdown(d time.Duration) Countdown {
	return Countdown{left: d}
}

// Step subtracts dt and reports whether the countdown has expired
func (c *Countdown) Step(dt time.Duration) bool {
	c.left -= dt
	return c.left <= 0
}

// Rearm extends the countdown by d
func (c *Countdown) Rearm(d time.Duration) {
	c.left += d
}

// Remaining returns the time left, zero once expired
func (c *Countdown) Remaining() time.Duration {
	return max(c.left, 0)
}
