package cli

import (
	"context"

	"github.com/NikitaCOEUR/stagebench/pkg/bench"
)

// latencyTracker is the tracker label used in exported metrics
const latencyTracker = "sort"

// Latency times single sorts of a small slice and prints avg/min/max
func Latency(ctx context.Context, p Params) error {
	c, err := initializeComponents(p)
	if err != nil {
		return err
	}
	if err := c.warmup(ctx); err != nil {
		return err
	}

	n := iterations(p.Iterations)
	tracker := bench.NewLatencyTracker(c.bench...)
	for i := range n {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		values := sample(64, i)
		tracker.OpStart()
		bench.Keep(sortCopy(values))
		if err := tracker.OpFinish(); err != nil {
			c.log.Debug().Err(err).Msg("Sample dropped")
		}
	}

	s := tracker.Summary()
	if err := c.printer.PrintLatency(s); err != nil {
		return err
	}
	if c.exporter != nil {
		if err := c.exporter.ExportLatency(latencyTracker, s); err != nil {
			return err
		}
	}
	return c.flush()
}
