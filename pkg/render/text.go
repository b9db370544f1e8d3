package render

import (
	"fmt"
	"strings"

	"github.com/hako/durafmt"

	"github.com/NikitaCOEUR/stagebench/pkg/bench"
	"github.com/NikitaCOEUR/stagebench/pkg/timing"
)

// Run renders a single stage the way a one-shot benchmark prints it
func Run(row bench.Row, style Style) string {
	th := style.Theme
	g := style.Grouping

	errs := "None"
	if row.Errors > 0 {
		errs = th.Paint(th.Failure, Count(row.Errors, g))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Iterations: %s, success: %s, errors: %s",
		th.Paint(th.Count, Count(row.Iterations, g)),
		th.Paint(th.Success, Count(row.Successes, g)),
		errs)
	if row.Errors > 0 {
		fmt.Fprintf(&b, ", error rate: %s", th.Paint(th.Failure, Percent(row.ErrorRate)))
	}
	b.WriteString("\nElapsed:\n")
	fmt.Fprintf(&b, " %s secs (%s msecs)\n",
		th.Paint(th.Time, Duration(row.Elapsed, timing.Seconds)),
		th.Paint(th.TimeAlt, Duration(row.Elapsed, timing.Milliseconds)))
	fmt.Fprintf(&b, " %s iters/s\n", th.Paint(th.Speed, Throughput(row.OpsPerSecond, g)))
	fmt.Fprintf(&b, " %s ns per iter", th.Paint(th.Count, Throughput(row.NsPerOp, g)))
	return b.String()
}

// Latency renders avg/min/max in a unit chosen from the maximum
func Latency(s bench.LatencySummary, style Style) string {
	if !s.Valid {
		return "latency: no data"
	}
	th := style.Theme
	unit := timing.UnitFor(s.Max)
	return fmt.Sprintf("latency (%s) avg: %s, min: %s, max: %s",
		unit.Suffix(),
		th.Paint(th.Speed, Duration(s.Avg, unit)),
		th.Paint(th.Success, Duration(s.Min, unit)),
		th.Paint(th.Failure, Duration(s.Max, unit)))
}

// Perf renders checkpoint statistics followed by a TOTAL row
func Perf(rep bench.PerfReport, style Style) string {
	th := style.Theme
	unit := timing.UnitFor(rep.Durations()...)

	header := []string{"checkpoint", "total", "avg", "min", "max", "%"}
	for i, h := range header {
		header[i] = th.Paint(th.Header, h)
	}

	rows := make([][]string, 0, len(rep.Rows)+1)
	for _, r := range rep.Rows {
		rows = append(rows, perfCells(r, r.Name, unit, th))
	}
	rows = append(rows, perfCells(rep.Total, th.Paint(th.Highlight, bench.TotalLabel), unit, th))

	var b strings.Builder
	fmt.Fprintf(&b, "Iterations: %s\n\n", th.Paint(th.Count, Count(rep.Iterations, style.Grouping)))
	b.WriteString(grid(header, rows))
	b.WriteString("\n")
	b.WriteString(th.Paint(th.Muted, fmt.Sprintf("(durations in %s, %s measured)",
		unit.Name(), durafmt.Parse(rep.Total.Total).LimitFirstN(2).String())))
	return b.String()
}

func perfCells(r bench.PerfRow, name string, unit timing.Unit, th Theme) []string {
	return []string{
		name,
		th.Paint(th.Time, Duration(r.Total, unit)),
		th.Paint(th.Success, Duration(r.Avg, unit)),
		th.Paint(th.TimeAlt, Duration(r.Min, unit)),
		th.Paint(th.Speed, Duration(r.Max, unit)),
		fmt.Sprintf("%.2f", r.Percent),
	}
}
