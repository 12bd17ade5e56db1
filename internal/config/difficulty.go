package config

import "time"

// Ramp is the time-stepped difficulty scalar. Each whole interval since the
// last increase adds Step; the epoch advances by exactly one interval per
// increase so late ticks never drift the schedule.
type Ramp struct {
	cfg   RampConfig
	speed float64
	epoch time.Time
}

// NewRamp creates a ramp from configuration. Call Reset before use.
func NewRamp(cfg RampConfig) *Ramp {
	return &Ramp{cfg: cfg, speed: cfg.Initial}
}

// Reset restores the initial scalar and sets the epoch to now.
func (r *Ramp) Reset(now time.Time) {
	r.speed = r.cfg.Initial
	r.epoch = now
}

// IsEnabled returns whether difficulty progression is active.
func (r *Ramp) IsEnabled() bool {
	return r.cfg.Enabled && r.cfg.Interval() > 0
}

// Update applies every increase due by now and returns the scalar.
func (r *Ramp) Update(now time.Time) float64 {
	if !r.IsEnabled() {
		return r.speed
	}
	interval := r.cfg.Interval()
	for now.Sub(r.epoch) >= interval {
		r.speed += r.cfg.Step
		r.epoch = r.epoch.Add(interval)
	}
	return r.speed
}

// Speed returns the current scalar without advancing it.
func (r *Ramp) Speed() float64 {
	return r.speed
}
