package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/NikitaCOEUR/stagebench/pkg/bench"
)

// RowView is the encoded form of a report row. Undefined values are omitted
// instead of being written as NaN.
type RowView struct {
	Name         string   `json:"name" yaml:"name"`
	ElapsedNs    int64    `json:"elapsed_ns" yaml:"elapsed_ns"`
	Iterations   uint64   `json:"iterations" yaml:"iterations"`
	Successes    uint64   `json:"successes" yaml:"successes"`
	Errors       uint64   `json:"errors" yaml:"errors"`
	ErrorRate    float64  `json:"error_rate" yaml:"error_rate"`
	OpsPerSecond *float64 `json:"ops_per_second,omitempty" yaml:"ops_per_second,omitempty"`
	NsPerOp      *float64 `json:"ns_per_op,omitempty" yaml:"ns_per_op,omitempty"`
	SpeedFactor  *float64 `json:"speed_factor,omitempty" yaml:"speed_factor,omitempty"`
	IsReference  bool     `json:"is_reference,omitempty" yaml:"is_reference,omitempty"`
	Running      bool     `json:"running,omitempty" yaml:"running,omitempty"`
}

// ReportView is the encoded form of a comparison report
type ReportView struct {
	Reference string    `json:"reference,omitempty" yaml:"reference,omitempty"`
	HasErrors bool      `json:"has_errors" yaml:"has_errors"`
	Stages    []RowView `json:"stages" yaml:"stages"`
}

// LatencyView is the encoded form of a latency summary
type LatencyView struct {
	Count uint64 `json:"count" yaml:"count"`
	AvgNs *int64 `json:"avg_ns,omitempty" yaml:"avg_ns,omitempty"`
	MinNs *int64 `json:"min_ns,omitempty" yaml:"min_ns,omitempty"`
	MaxNs *int64 `json:"max_ns,omitempty" yaml:"max_ns,omitempty"`
}

// PerfRowView is the encoded form of one checkpoint
type PerfRowView struct {
	Name         string  `json:"name" yaml:"name"`
	TotalNs      int64   `json:"total_ns" yaml:"total_ns"`
	AvgNs        int64   `json:"avg_ns" yaml:"avg_ns"`
	MinNs        int64   `json:"min_ns" yaml:"min_ns"`
	MaxNs        int64   `json:"max_ns" yaml:"max_ns"`
	Observations uint64  `json:"observations" yaml:"observations"`
	Percent      float64 `json:"percent" yaml:"percent"`
}

// PerfView is the encoded form of a Perf report
type PerfView struct {
	Iterations  uint64        `json:"iterations" yaml:"iterations"`
	Checkpoints []PerfRowView `json:"checkpoints" yaml:"checkpoints"`
	Total       PerfRowView   `json:"total" yaml:"total"`
}

func defined(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// NewRowView converts a row
func NewRowView(r bench.Row) RowView {
	return RowView{
		Name:         r.Name,
		ElapsedNs:    r.Elapsed.Nanoseconds(),
		Iterations:   r.Iterations,
		Successes:    r.Successes,
		Errors:       r.Errors,
		ErrorRate:    r.ErrorRate,
		OpsPerSecond: defined(r.OpsPerSecond),
		NsPerOp:      defined(r.NsPerOp),
		SpeedFactor:  defined(r.SpeedFactor),
		IsReference:  r.IsReference,
		Running:      r.Running,
	}
}

// NewReportView converts a report
func NewReportView(rep bench.Report) ReportView {
	v := ReportView{
		Reference: rep.Reference,
		HasErrors: rep.HasErrors,
		Stages:    make([]RowView, 0, len(rep.Rows)),
	}
	for _, r := range rep.Rows {
		v.Stages = append(v.Stages, NewRowView(r))
	}
	return v
}

// NewLatencyView converts a latency summary
func NewLatencyView(s bench.LatencySummary) LatencyView {
	v := LatencyView{Count: s.Count}
	if s.Valid {
		avg, lo, hi := s.Avg.Nanoseconds(), s.Min.Nanoseconds(), s.Max.Nanoseconds()
		v.AvgNs, v.MinNs, v.MaxNs = &avg, &lo, &hi
	}
	return v
}

func newPerfRowView(r bench.PerfRow) PerfRowView {
	return PerfRowView{
		Name:         r.Name,
		TotalNs:      r.Total.Nanoseconds(),
		AvgNs:        r.Avg.Nanoseconds(),
		MinNs:        r.Min.Nanoseconds(),
		MaxNs:        r.Max.Nanoseconds(),
		Observations: r.Observations,
		Percent:      r.Percent,
	}
}

// NewPerfView converts a Perf report
func NewPerfView(rep bench.PerfReport) PerfView {
	v := PerfView{
		Iterations:  rep.Iterations,
		Checkpoints: make([]PerfRowView, 0, len(rep.Rows)),
		Total:       newPerfRowView(rep.Total),
	}
	v.Total.Name = bench.TotalLabel
	for _, r := range rep.Rows {
		v.Checkpoints = append(v.Checkpoints, newPerfRowView(r))
	}
	return v
}

// Encode writes a report, row, latency summary or Perf report to w
func Encode(w io.Writer, format Format, value any) error {
	var view any
	switch v := value.(type) {
	case bench.Report:
		view = NewReportView(v)
	case bench.Row:
		view = NewRowView(v)
	case bench.LatencySummary:
		view = NewLatencyView(v)
	case bench.PerfReport:
		view = NewPerfView(v)
	default:
		return fmt.Errorf("cannot encode %T", value)
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported encoding format: %s", format)
	}
}
