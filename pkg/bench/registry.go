package bench

import (
	"context"
	"fmt"
	"iter"

	"github.com/NikitaCOEUR/stagebench/internal/logger"
	"github.com/NikitaCOEUR/stagebench/internal/trace"
	"github.com/NikitaCOEUR/stagebench/pkg/derrors"
	"github.com/NikitaCOEUR/stagebench/pkg/timing"
)

// Registry is an ordered, name-keyed collection of stages. It remembers the
// last started stage so FinishCurrent does not need the name again.
type Registry struct {
	stages  map[string]*Stage
	order   []string
	current string

	clock timing.Clock
	log   *logger.Logger

	// at most one trace region is open so regions always nest
	ctx       context.Context
	region    string
	endRegion func()
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...Option) *Registry {
	s := newSettings(opts)
	return &Registry{
		stages: make(map[string]*Stage),
		order:  make([]string, 0),
		clock:  s.clock,
		log:    s.log,
		ctx:    context.Background(),
	}
}

// Start makes name the current stage and starts its timer. New names are
// appended to the report order; known names resume accumulating.
func (r *Registry) Start(name string) error {
	if name == "" {
		return r.report(derrors.NewUsageError(derrors.CodeEmptyName, "start", "",
			"stage name must not be empty"))
	}

	st, ok := r.stages[name]
	if !ok {
		st = NewStage(name)
		r.stages[name] = st
		r.order = append(r.order, name)
	}

	r.current = name
	r.openRegion(name)

	r.log.Debug().Str("stage", name).Bool("resumed", ok).Msg("stage started")
	st.Start(r.clock.Now())
	return nil
}

// Finish stops the named stage regardless of which stage is current
func (r *Registry) Finish(name string, iterations, errs uint64) error {
	now := r.clock.Now()

	st, ok := r.stages[name]
	if !ok {
		return r.report(derrors.NewNotFoundError("stage", fmt.Sprintf("stage %q not found", name)))
	}

	err := st.Stop(now, iterations, errs)
	if derrors.HasCode(err, derrors.CodeStopWithoutStart) || derrors.HasCode(err, derrors.CodeInvalidCount) {
		return r.report(err)
	}

	r.closeRegion(name)
	r.log.Info().
		Str("stage", name).
		Uint64("iterations", iterations).
		Uint64("errors", errs).
		Dur("elapsed_ms", st.Elapsed()).
		Msg("stage completed")

	if err != nil {
		return r.report(err)
	}
	return nil
}

// FinishCurrent stops the last started stage and clears the current marker
func (r *Registry) FinishCurrent(iterations, errs uint64) error {
	if r.current == "" {
		return r.report(derrors.NewUsageError(derrors.CodeNoCurrentStage, "finish_current", "",
			"no current stage to finish"))
	}

	name := r.current
	err := r.Finish(name, iterations, errs)
	if st, ok := r.stages[name]; !ok || !st.Running() {
		r.current = ""
	}
	return err
}

// Current returns the current stage name, or "" when there is none
func (r *Registry) Current() string {
	return r.current
}

// Get returns a snapshot of the named stage
func (r *Registry) Get(name string) (Stage, error) {
	st, ok := r.stages[name]
	if !ok {
		return Stage{}, derrors.NewNotFoundError("stage", fmt.Sprintf("stage %q not found", name))
	}
	return *st, nil
}

// Len returns the number of stages
func (r *Registry) Len() int {
	return len(r.order)
}

// All yields stage snapshots in insertion order. The sequence can be ranged
// over any number of times.
func (r *Registry) All() iter.Seq2[string, Stage] {
	return func(yield func(string, Stage) bool) {
		for _, name := range r.order {
			if !yield(name, *r.stages[name]) {
				return
			}
		}
	}
}

// ResetStage zeroes one stage in place, keeping its position
func (r *Registry) ResetStage(name string) error {
	st, ok := r.stages[name]
	if !ok {
		return r.report(derrors.NewNotFoundError("stage", fmt.Sprintf("stage %q not found", name)))
	}
	r.closeRegion(name)
	st.Reset()
	return nil
}

// Reset drops every stage
func (r *Registry) Reset() {
	r.closeRegion(r.region)
	r.stages = make(map[string]*Stage)
	r.order = r.order[:0]
	r.current = ""
}

// Report builds the comparison report without a reference stage
func (r *Registry) Report() Report {
	return BuildReport(r.snapshot(), "")
}

// ReportFor builds the comparison report relative to reference. An unknown
// reference gives a report without speed factors and a NotFoundError.
func (r *Registry) ReportFor(reference string) (Report, error) {
	if _, ok := r.stages[reference]; !ok {
		err := r.report(derrors.NewNotFoundError("stage",
			fmt.Sprintf("reference stage %q not found", reference)))
		return BuildReport(r.snapshot(), ""), err
	}
	return BuildReport(r.snapshot(), reference), nil
}

// Run starts name, calls fn iterations times and finishes the stage
func (r *Registry) Run(name string, iterations uint64, fn func()) error {
	if err := r.Start(name); err != nil {
		return err
	}
	for range iterations {
		fn()
	}
	return r.Finish(name, iterations, 0)
}

// RunCheck is Run for workloads reporting success; false counts as an error
func (r *Registry) RunCheck(name string, iterations uint64, fn func() bool) error {
	if err := r.Start(name); err != nil {
		return err
	}
	var errs uint64
	for range iterations {
		if !fn() {
			errs++
		}
	}
	return r.Finish(name, iterations, errs)
}

func (r *Registry) snapshot() []Stage {
	stages := make([]Stage, 0, len(r.order))
	for _, st := range r.All() {
		stages = append(stages, st)
	}
	return stages
}

// openRegion traces name as a region unless another stage's region is open;
// overlapping stages are logged instead.
func (r *Registry) openRegion(name string) {
	if r.endRegion != nil && r.region != name {
		trace.Log(r.ctx, "stage", name)
		return
	}
	r.closeRegion(name)
	r.region = name
	r.endRegion = trace.Region(r.ctx, name)
}

func (r *Registry) closeRegion(name string) {
	if r.endRegion == nil || r.region != name {
		return
	}
	r.endRegion()
	r.region = ""
	r.endRegion = nil
}

func (r *Registry) report(err error) error {
	r.log.Warn().Err(err).Msg("benchmark usage error")
	trace.Log(r.ctx, "usage", err.Error())
	return err
}
