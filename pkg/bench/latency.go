package bench

import (
	"fmt"
	"time"

	"github.com/NikitaCOEUR/stagebench/internal/logger"
	"github.com/NikitaCOEUR/stagebench/pkg/derrors"
	"github.com/NikitaCOEUR/stagebench/pkg/timing"
)

// LatencyTracker keeps running min/avg/max statistics of single operations.
// Samples are folded in as they arrive and are not retained.
type LatencyTracker struct {
	count uint64
	sum   time.Duration
	min   time.Duration
	max   time.Duration

	opStart time.Time
	pending bool

	clock timing.Clock
	log   *logger.Logger
}

// LatencySummary is the avg/min/max view of a tracker. Valid is false when
// nothing was recorded, in which case the durations are zero.
type LatencySummary struct {
	Count uint64
	Sum   time.Duration
	Avg   time.Duration
	Min   time.Duration
	Max   time.Duration
	Valid bool
}

// NewLatencyTracker creates an empty tracker
func NewLatencyTracker(opts ...Option) *LatencyTracker {
	s := newSettings(opts)
	return &LatencyTracker{clock: s.clock, log: s.log}
}

// Record folds d into the statistics. Negative durations are dropped.
func (l *LatencyTracker) Record(d time.Duration) error {
	if d < 0 {
		err := derrors.NewClockError("latency", fmt.Sprintf("negative latency %s ignored", d))
		l.log.Warn().Err(err).Msg("benchmark usage error")
		return err
	}

	if l.count == 0 || d < l.min {
		l.min = d
	}
	if l.count == 0 || d > l.max {
		l.max = d
	}
	l.count++
	l.sum += d
	return nil
}

// OpStart marks the beginning of one operation
func (l *LatencyTracker) OpStart() {
	l.opStart = l.clock.Now()
	l.pending = true
}

// OpFinish records the time since the matching OpStart
func (l *LatencyTracker) OpFinish() error {
	now := l.clock.Now()
	if !l.pending {
		err := derrors.NewUsageError(derrors.CodeFinishWithoutStart, "op_finish", "",
			"operation finished without a matching start")
		l.log.Warn().Err(err).Msg("benchmark usage error")
		return err
	}
	l.pending = false
	return l.Record(now.Sub(l.opStart))
}

// Count returns the number of recorded operations
func (l *LatencyTracker) Count() uint64 {
	return l.count
}

// Summary returns the current statistics
func (l *LatencyTracker) Summary() LatencySummary {
	if l.count == 0 {
		return LatencySummary{}
	}
	return LatencySummary{
		Count: l.count,
		Sum:   l.sum,
		Avg:   l.sum / time.Duration(l.count),
		Min:   l.min,
		Max:   l.max,
		Valid: true,
	}
}

// Clear drops all statistics and any pending operation
func (l *LatencyTracker) Clear() {
	l.count = 0
	l.sum, l.min, l.max = 0, 0, 0
	l.pending = false
	l.opStart = time.Time{}
}
