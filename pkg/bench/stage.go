package bench

import (
	"fmt"
	"math"
	"time"

	"github.com/NikitaCOEUR/stagebench/pkg/derrors"
	"github.com/NikitaCOEUR/stagebench/pkg/timing"
)

// Stage is one named, independently timed unit of a staged benchmark.
// The zero value is an idle stage with no name.
type Stage struct {
	name       string
	startedAt  time.Time
	running    bool
	elapsed    time.Duration
	iterations uint64
	successes  uint64
	errs       uint64
}

// NewStage creates an idle stage with zero counters
func NewStage(name string) *Stage {
	return &Stage{name: name}
}

// Name returns the stage name
func (s Stage) Name() string { return s.name }

// Running reports whether Start was called without a matching Stop
func (s Stage) Running() bool { return s.running }

// Elapsed returns the accumulated duration of finished runs
func (s Stage) Elapsed() time.Duration { return s.elapsed }

// Iterations returns the accumulated iteration count
func (s Stage) Iterations() uint64 { return s.iterations }

// Successes returns the accumulated successful iterations
func (s Stage) Successes() uint64 { return s.successes }

// Errors returns the accumulated failed iterations
func (s Stage) Errors() uint64 { return s.errs }

// Start marks the stage as running from at. A finished stage resumes and
// keeps its elapsed time and counters; a running one restarts its timer.
func (s *Stage) Start(at time.Time) {
	s.startedAt = at
	s.running = true
}

// Stop adds at - start to elapsed and accumulates the counters. Stopping an
// idle stage, or reporting more errors than iterations, is a usage error and
// leaves the stage untouched. A negative delta is clamped to zero; the counters
// still apply and a ClockError is returned.
func (s *Stage) Stop(at time.Time, iterations, errs uint64) error {
	if !s.running {
		return derrors.NewUsageError(derrors.CodeStopWithoutStart, "stop", s.name,
			fmt.Sprintf("stage %q stopped without a matching start", s.name))
	}
	if errs > iterations {
		return derrors.NewUsageError(derrors.CodeInvalidCount, "stop", s.name,
			fmt.Sprintf("stage %q: %d errors exceed %d iterations", s.name, errs, iterations))
	}

	d, skewed := timing.Between(s.startedAt, at)
	drift := s.startedAt.Sub(at)
	s.elapsed += d
	s.iterations += iterations
	s.errs += errs
	s.successes += iterations - errs
	s.running = false
	s.startedAt = time.Time{}

	if skewed {
		return derrors.NewClockError(s.name,
			fmt.Sprintf("stage %q: clock went backward by %s, elapsed clamped to zero", s.name, drift))
	}
	return nil
}

// Reset zeroes the stage and makes it idle
func (s *Stage) Reset() {
	*s = Stage{name: s.name}
}

// OpsPerSecond returns iterations per second, or NaN when no time elapsed
func (s Stage) OpsPerSecond() float64 {
	if s.elapsed <= 0 {
		return math.NaN()
	}
	return float64(s.iterations) / s.elapsed.Seconds()
}

// ErrorRate returns errors / iterations, or 0 without iterations
func (s Stage) ErrorRate() float64 {
	if s.iterations == 0 {
		return 0
	}
	return float64(s.errs) / float64(s.iterations)
}

// NsPerOp returns the mean nanoseconds per iteration, or NaN without iterations
func (s Stage) NsPerOp() float64 {
	if s.iterations == 0 {
		return math.NaN()
	}
	return float64(s.elapsed.Nanoseconds()) / float64(s.iterations)
}
