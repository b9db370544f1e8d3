package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/stagebench/pkg/bench"
	"github.com/NikitaCOEUR/stagebench/pkg/timing"
)

type stageRun struct {
	name       string
	elapsed    time.Duration
	iterations uint64
	errs       uint64
}

// newRegistry records runs on a manual clock
func newRegistry(t *testing.T, runs ...stageRun) *bench.Registry {
	t.Helper()
	clock := timing.NewManual(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	reg := bench.NewRegistry(bench.WithClock(clock), bench.WithLogOutput(nil, ""))
	for _, r := range runs {
		require.NoError(t, reg.Start(r.name))
		clock.Advance(r.elapsed)
		require.NoError(t, reg.Finish(r.name, r.iterations, r.errs))
	}
	return reg
}
