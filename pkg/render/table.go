package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/NikitaCOEUR/stagebench/pkg/bench"
	"github.com/NikitaCOEUR/stagebench/pkg/timing"
)

// ReferenceMarker fills the speed column of the reference row
const ReferenceMarker = "—"

// Columns returns the header of a comparison table. Error columns appear only
// when some stage failed, the speed column only with a reference.
func Columns(rep bench.Report) []string {
	unit := timing.UnitFor(rep.Elapsed()...)

	cols := []string{"stage", "iters"}
	if rep.HasErrors {
		cols = append(cols, "succs", "errs", "err.rate")
	}
	cols = append(cols, fmt.Sprintf("time (%s)", unit.Suffix()), "iters/s")
	if rep.HasReference() {
		cols = append(cols, "vs ref")
	}
	return cols
}

// Cells returns the table body, one slice per row, styled by the theme. The time
// unit is shared by every row.
func Cells(rep bench.Report, style Style) [][]string {
	unit := timing.UnitFor(rep.Elapsed()...)
	th := style.Theme

	rows := make([][]string, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		cells := []string{r.Name, th.Paint(th.Count, Count(r.Iterations, style.Grouping))}
		if rep.HasErrors {
			cells = append(cells,
				th.Paint(th.Success, Count(r.Successes, style.Grouping)),
				th.Paint(th.Failure, Count(r.Errors, style.Grouping)),
				th.Paint(th.Failure, Percent(r.ErrorRate)),
			)
		}
		cells = append(cells,
			th.Paint(th.Time, Duration(r.Elapsed, unit)),
			th.Paint(th.Speed, Throughput(r.OpsPerSecond, style.Grouping)),
		)
		if rep.HasReference() {
			cells = append(cells, speedCell(r, th))
		}
		rows = append(rows, cells)
	}
	return rows
}

func speedCell(r bench.Row, th Theme) string {
	switch {
	case r.IsReference:
		return th.Paint(th.Muted, ReferenceMarker)
	case r.SpeedFactor > 1:
		return th.Paint(th.Success, Factor(r.SpeedFactor))
	case r.SpeedFactor < 1:
		return th.Paint(th.Failure, Factor(r.SpeedFactor))
	default:
		return Factor(r.SpeedFactor)
	}
}

// Table renders a comparison report as a text table
func Table(rep bench.Report, style Style) string {
	header := make([]string, 0, 8)
	for _, c := range Columns(rep) {
		header = append(header, style.Theme.Paint(style.Theme.Header, c))
	}
	return grid(header, Cells(rep, style))
}

// grid lays out cells with tablewriter
func grid(header []string, rows [][]string) string {
	var buf bytes.Buffer

	t := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleLight),
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	t.Header(header)
	for _, row := range rows {
		_ = t.Append(row)
	}
	_ = t.Render()

	return strings.TrimRight(buf.String(), "\n")
}
