package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumns(t *testing.T) {
	reg := newRegistry(t,
		stageRun{"a", 2 * time.Second, 1000, 0},
		stageRun{"b", time.Second, 1000, 0},
	)

	assert.Equal(t, []string{"stage", "iters", "time (s)", "iters/s"}, Columns(reg.Report()))

	rep, err := reg.ReportFor("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"stage", "iters", "time (s)", "iters/s", "vs ref"}, Columns(rep))
}

func TestColumns_ErrorsShownForAllRows(t *testing.T) {
	reg := newRegistry(t,
		stageRun{"clean", 10 * time.Millisecond, 100, 0},
		stageRun{"flaky", 20 * time.Millisecond, 100, 25},
	)
	rep := reg.Report()

	assert.Equal(t,
		[]string{"stage", "iters", "succs", "errs", "err.rate", "time (ms)", "iters/s"},
		Columns(rep))

	cells := Cells(rep, DefaultStyle())
	require.Len(t, cells, 2)
	assert.Equal(t, []string{"clean", "100", "100", "0", "0.00 %", "10.000", "10_000"}, cells[0])
	assert.Equal(t, []string{"flaky", "100", "75", "25", "25.00 %", "20.000", "5_000"}, cells[1])
}

func TestCells_SharedUnitAndSpeedFactor(t *testing.T) {
	reg := newRegistry(t,
		stageRun{"slow", 2 * time.Second, 1_000_000, 0},
		stageRun{"fast", 1 * time.Second, 1_000_000, 0},
		stageRun{"tiny", 600 * time.Microsecond, 1, 0},
	)
	rep, err := reg.ReportFor("slow")
	require.NoError(t, err)

	cells := Cells(rep, DefaultStyle())
	require.Len(t, cells, 3)

	// every row uses the unit picked from the slowest stage
	assert.Equal(t, []string{"slow", "1_000_000", "2.000", "500_000", ReferenceMarker}, cells[0])
	assert.Equal(t, []string{"fast", "1_000_000", "1.000", "1_000_000", "x2.00"}, cells[1])
	assert.Equal(t, "0.001", cells[2][2])
}

func TestTable_Plain(t *testing.T) {
	reg := newRegistry(t,
		stageRun{"parse", time.Second, 2000, 0},
		stageRun{"encode", 500 * time.Millisecond, 2000, 0},
	)
	rep, err := reg.ReportFor("parse")
	require.NoError(t, err)

	out := Table(rep, DefaultStyle())
	for _, want := range []string{"stage", "vs ref", "parse", "encode", "2_000", "4_000", "x2.00", ReferenceMarker} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[")
	assert.NotContains(t, out, "err.rate")
}

func TestTable_Idempotent(t *testing.T) {
	reg := newRegistry(t, stageRun{"a", time.Second, 10, 1})
	rep := reg.Report()

	first := Table(rep, DefaultStyle())
	assert.Equal(t, first, Table(rep, DefaultStyle()))
	// NaN speed factors compare unequal, so compare through the view
	assert.Equal(t, NewReportView(rep), NewReportView(reg.Report()))
	assert.Equal(t, first, Table(reg.Report(), DefaultStyle()))
}

func TestTable_Colored(t *testing.T) {
	reg := newRegistry(t, stageRun{"a", time.Second, 10, 0})

	style := DefaultStyle()
	style.Theme = NewTheme(&bytes.Buffer{}, true)

	out := Table(reg.Report(), style)
	assert.Contains(t, out, "\x1b[")
	assert.True(t, strings.Contains(out, "a"))
}

func TestCells_RunningStage(t *testing.T) {
	reg := newRegistry(t)
	require.NoError(t, reg.Start("open"))

	cells := Cells(reg.Report(), DefaultStyle())
	require.Len(t, cells, 1)
	assert.Equal(t, Missing, cells[0][3])
}
