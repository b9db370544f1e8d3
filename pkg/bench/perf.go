package bench

import (
	"fmt"
	"time"

	"github.com/NikitaCOEUR/stagebench/internal/logger"
	"github.com/NikitaCOEUR/stagebench/pkg/derrors"
	"github.com/NikitaCOEUR/stagebench/pkg/timing"
)

// spread tracks total/min/max over observations
type spread struct {
	total time.Duration
	min   time.Duration
	max   time.Duration
	count uint64
}

func (s *spread) add(d time.Duration) {
	if s.count == 0 || d < s.min {
		s.min = d
	}
	if s.count == 0 || d > s.max {
		s.max = d
	}
	s.total += d
	s.count++
}

// Perf attributes elapsed time to named checkpoints inside repeated
// iterations. Checkpoint order is fixed by first appearance.
type Perf struct {
	iterations uint64
	started    bool
	lastMark   time.Time

	order  []string
	index  map[string]int
	points map[string]*spread

	// position of the furthest checkpoint reached in the current iteration
	iterPos   int
	iterTotal time.Duration
	iterUsed  bool
	totals    spread

	clock timing.Clock
	log   *logger.Logger
}

// PerfRow is one checkpoint line of a Perf report
type PerfRow struct {
	Name         string
	Total        time.Duration
	Avg          time.Duration // Total divided by the number of iterations
	Min          time.Duration
	Max          time.Duration
	Observations uint64
	Percent      float64 // share of all checkpoint time, 0 when none elapsed
}

// TotalLabel names the whole-iteration row of a Perf report
const TotalLabel = "TOTAL"

// PerfReport is a read-only snapshot of a Perf
type PerfReport struct {
	Iterations uint64
	Rows       []PerfRow
	// Total covers whole iterations: Min/Max are the fastest and slowest
	// iteration, Avg the mean iteration.
	Total PerfRow
}

// Durations returns every duration shown in the report, for picking a unit
func (r PerfReport) Durations() []time.Duration {
	out := make([]time.Duration, 0, 4*(len(r.Rows)+1))
	for _, row := range r.Rows {
		out = append(out, row.Total, row.Avg, row.Min, row.Max)
	}
	return append(out, r.Total.Total, r.Total.Avg, r.Total.Min, r.Total.Max)
}

// NewPerf creates an empty checkpointer
func NewPerf(opts ...Option) *Perf {
	s := newSettings(opts)
	return &Perf{
		index:   make(map[string]int),
		points:  make(map[string]*spread),
		iterPos: -1,
		clock:   s.clock,
		log:     s.log,
	}
}

// Start begins a new iteration
func (p *Perf) Start() {
	p.foldIteration()
	p.iterations++
	p.started = true
	p.iterPos = -1
	p.lastMark = p.clock.Now()
}

// Checkpoint attributes the time since the previous mark to name. Calling it
// before Start measures nothing. A checkpoint reached out of its first-seen
// order is still accumulated under its slot but reported as a usage error.
func (p *Perf) Checkpoint(name string) error {
	if !p.started {
		return p.report(derrors.NewUsageError(derrors.CodeCheckpointWithoutStart, "checkpoint", name,
			fmt.Sprintf("checkpoint %q before any start", name)))
	}

	now := p.clock.Now()
	d, skewed := timing.Between(p.lastMark, now)
	p.lastMark = now

	idx, seen := p.index[name]
	if !seen {
		idx = len(p.order)
		p.order = append(p.order, name)
		p.index[name] = idx
		p.points[name] = &spread{}
	}
	p.points[name].add(d)
	p.iterTotal += d
	p.iterUsed = true

	var err error
	if seen && idx <= p.iterPos {
		err = derrors.NewUsageError(derrors.CodeCheckpointOutOfOrder, "checkpoint", name,
			fmt.Sprintf("checkpoint %q reached out of order in iteration %d", name, p.iterations))
	} else if skewed {
		err = derrors.NewClockError(name, fmt.Sprintf("checkpoint %q: clock went backward", name))
	}
	if idx > p.iterPos {
		p.iterPos = idx
	}

	if err != nil {
		return p.report(err)
	}
	return nil
}

// Iterations returns the number of started iterations
func (p *Perf) Iterations() uint64 {
	return p.iterations
}

// Checkpoints returns checkpoint names in first-seen order
func (p *Perf) Checkpoints() []string {
	return append([]string(nil), p.order...)
}

// Report computes the per-checkpoint statistics without changing state
func (p *Perf) Report() PerfReport {
	rep := PerfReport{
		Iterations: p.iterations,
		Rows:       make([]PerfRow, 0, len(p.order)),
	}

	var grand time.Duration
	for _, name := range p.order {
		grand += p.points[name].total
	}

	for _, name := range p.order {
		rep.Rows = append(rep.Rows, p.row(name, *p.points[name], grand))
	}

	totals := p.totals
	if p.iterUsed {
		totals.add(p.iterTotal)
	}
	rep.Total = p.row(TotalLabel, totals, grand)

	return rep
}

// Reset forgets every iteration and checkpoint
func (p *Perf) Reset() {
	*p = Perf{
		index:   make(map[string]int),
		points:  make(map[string]*spread),
		iterPos: -1,
		clock:   p.clock,
		log:     p.log,
	}
}

func (p *Perf) row(name string, s spread, grand time.Duration) PerfRow {
	row := PerfRow{
		Name:         name,
		Total:        s.total,
		Min:          s.min,
		Max:          s.max,
		Observations: s.count,
	}
	if p.iterations > 0 {
		row.Avg = s.total / time.Duration(p.iterations)
	}
	if grand > 0 {
		row.Percent = float64(s.total) / float64(grand) * 100
	}
	return row
}

func (p *Perf) foldIteration() {
	if p.iterUsed {
		p.totals.add(p.iterTotal)
	}
	p.iterTotal = 0
	p.iterUsed = false
}

func (p *Perf) report(err error) error {
	p.log.Warn().Err(err).Msg("benchmark usage error")
	return err
}
