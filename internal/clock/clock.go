// Package clock provides the time sources and countdown helpers used by
// game logic. Games never call time.Now directly so that every timer can be
// driven deterministically in tests.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// Real reads the system wall clock.
type Real struct{}

// Now returns time.Now().
func (Real) Now() time.Time {
	return time.Now()
}

// Manual is a controllable clock for tests and headless simulation.
type Manual struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManual creates a manual clock starting at the given time.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set jumps the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Pausable wraps another clock and stops time while paused.
// Elapsed time during pauses is subtracted from every reading.
type Pausable struct {
	base     Clock
	paused   bool
	pausedAt time.Time
	offset   time.Duration
}

// NewPausable wraps base.
func NewPausable(base Clock) *Pausable {
	return &Pausable{base: base}
}

// Now returns base time minus accumulated pause time.
func (p *Pausable) Now() time.Time {
	if p.paused {
		return p.pausedAt.Add(-p.offset)
	}
	return p.base.Now().Add(-p.offset)
}

// Pause freezes the clock. Pausing twice is a no-op.
func (p *Pausable) Pause() {
	if p.paused {
		return
	}
	p.paused = true
	p.pausedAt = p.base.Now()
}

// Resume unfreezes the clock.
func (p *Pausable) Resume() {
	if !p.paused {
		return
	}
	p.offset += p.base.Now().Sub(p.pausedAt)
	p.paused = false
}

// Paused reports whether the clock is frozen.
func (p *Pausable) Paused() bool {
	return p.paused
}
