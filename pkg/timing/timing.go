// Package timing provides the clock and duration primitives used by the
// benchmark engines.
package timing

import (
	"sync"
	"time"
)

// Clock is a source of instants
type Clock interface {
	Now() time.Time
}

// systemClock reads the monotonic wall clock
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// System is the default clock backed by time.Now
var System Clock = systemClock{}

// Manual is a clock that only moves when told to. It is meant for tests that
// need exact durations.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual creates a manual clock set to start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual instant
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward (or backward, for a negative d)
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Set jumps the clock to t
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Between returns end - start clamped to zero. The second result is true when
// the raw delta was negative and had to be clamped.
func Between(start, end time.Time) (time.Duration, bool) {
	d := end.Sub(start)
	if d < 0 {
		return 0, true
	}
	return d, false
}

// SubSat subtracts b from a, saturating at zero
func SubSat(a, b time.Duration) time.Duration {
	if b >= a {
		return 0
	}
	return a - b
}

// Unit is a display unit for durations
type Unit int

const (
	// Microseconds is the smallest display unit
	Microseconds Unit = iota
	// Milliseconds display unit
	Milliseconds
	// Seconds display unit
	Seconds
)

// Suffix returns the short label of the unit
func (u Unit) Suffix() string {
	switch u {
	case Seconds:
		return "s"
	case Milliseconds:
		return "ms"
	default:
		return "μs"
	}
}

// Name returns the long label of the unit
func (u Unit) Name() string {
	switch u {
	case Seconds:
		return "seconds"
	case Milliseconds:
		return "milliseconds"
	default:
		return "microseconds"
	}
}

// Convert expresses d in the unit
func (u Unit) Convert(d time.Duration) float64 {
	switch u {
	case Seconds:
		return d.Seconds()
	case Milliseconds:
		return float64(d) / float64(time.Millisecond)
	default:
		return float64(d) / float64(time.Microsecond)
	}
}

// UnitFor picks the largest unit in which the biggest of durations is at
// least one. Empty input and sub-millisecond values give microseconds.
func UnitFor(durations ...time.Duration) Unit {
	var largest time.Duration
	for _, d := range durations {
		if d > largest {
			largest = d
		}
	}

	switch {
	case largest >= time.Second:
		return Seconds
	case largest >= time.Millisecond:
		return Milliseconds
	default:
		return Microseconds
	}
}
