package clock

import (
	"fmt"
	"time"
)

// Deadline is a one-shot countdown. The zero value is inactive.
type Deadline struct {
	end   time.Time
	armed bool
}

// Start arms the deadline to fire dur after now. Restarting an armed deadline
// replaces its end time.
func (d *Deadline) Start(now time.Time, dur time.Duration) {
	d.end = now.Add(dur)
	d.armed = true
}

// Active reports whether the deadline is armed and now is before its end.
func (d Deadline) Active(now time.Time) bool {
	return d.armed && now.Before(d.end)
}

// Remaining returns the time left, never negative. Zero when disarmed.
func (d Deadline) Remaining(now time.Time) time.Duration {
	if !d.armed {
		return 0
	}
	left := d.end.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}


// End returns the expiry time.
func (d Deadline) End() time.Time {
	return d.end
}

// Expire disarms the deadline if its end has passed and reports whether it
// did so. It returns true exactly once per Start.
func (d *Deadline) Expire(now time.Time) bool {
	if !d.armed || now.Before(d.end) {
		return false
	}
	d.armed = false
	return true
}

// FormatSeconds renders a duration as "s.mmm", matching the HUD countdowns.
func FormatSeconds(dur time.Duration) string {
	if dur < 0 {
		dur = 0
	}
	ms := dur.Milliseconds()
	return fmt.Sprintf("%d.%03d", ms/1000, ms%1000)
}
