package bench

import (
	"math"
	"time"
)

// Row is the derived view of one stage in a comparison report
type Row struct {
	Name         string
	Elapsed      time.Duration
	Iterations   uint64
	Successes    uint64
	Errors       uint64
	OpsPerSecond float64 // NaN when nothing elapsed
	ErrorRate    float64
	NsPerOp      float64 // NaN without iterations
	// SpeedFactor is OpsPerSecond relative to the reference stage; above 1
	// means faster. NaN when there is no usable reference.
	SpeedFactor float64
	IsReference bool
	Running     bool
}

// Report is a read-only comparison of stages in insertion order
type Report struct {
	Rows      []Row
	Reference string
	HasErrors bool
}

// HasReference reports whether speed factors were computed
func (r Report) HasReference() bool {
	return r.Reference != ""
}

// Row returns the row for name
func (r Report) Row(name string) (Row, bool) {
	for _, row := range r.Rows {
		if row.Name == name {
			return row, true
		}
	}
	return Row{}, false
}

// Elapsed returns every row's elapsed time, for picking a display unit
func (r Report) Elapsed() []time.Duration {
	out := make([]time.Duration, 0, len(r.Rows))
	for _, row := range r.Rows {
		out = append(out, row.Elapsed)
	}
	return out
}

// NewRow derives a report row from a stage snapshot
func NewRow(st Stage) Row {
	return Row{
		Name:         st.Name(),
		Elapsed:      st.Elapsed(),
		Iterations:   st.Iterations(),
		Successes:    st.Successes(),
		Errors:       st.Errors(),
		OpsPerSecond: st.OpsPerSecond(),
		ErrorRate:    st.ErrorRate(),
		NsPerOp:      st.NsPerOp(),
		SpeedFactor:  math.NaN(),
		Running:      st.Running(),
	}
}

// BuildReport derives rows from stages in the given order. reference is
// ignored when no stage carries that name. BuildReport never mutates stages.
func BuildReport(stages []Stage, reference string) Report {
	rep := Report{Rows: make([]Row, 0, len(stages))}

	refOps := math.NaN()
	for _, st := range stages {
		if reference != "" && st.Name() == reference {
			rep.Reference = reference
			refOps = st.OpsPerSecond()
		}
	}

	for _, st := range stages {
		row := NewRow(st)
		if row.Errors > 0 {
			rep.HasErrors = true
		}
		if rep.HasReference() {
			row.IsReference = row.Name == rep.Reference
			row.SpeedFactor = speedFactor(row.OpsPerSecond, refOps, row.IsReference)
		}
		rep.Rows = append(rep.Rows, row)
	}

	return rep
}

func speedFactor(ops, refOps float64, isReference bool) float64 {
	if isReference {
		return 1
	}
	if math.IsNaN(ops) || math.IsNaN(refOps) || refOps == 0 {
		return math.NaN()
	}
	return ops / refOps
}
