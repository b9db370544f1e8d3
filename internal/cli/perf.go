package cli

import (
	"context"

	"github.com/NikitaCOEUR/stagebench/pkg/bench"
)

// perfSampleSize is the slice length processed per iteration
const perfSampleSize = 256

// Perf splits each iteration of a generate/sort/sum pipeline into
// checkpoints and prints where the time went
func Perf(ctx context.Context, p Params) error {
	c, err := initializeComponents(p)
	if err != nil {
		return err
	}
	if err := c.warmup(ctx); err != nil {
		return err
	}

	n := iterations(p.Iterations)
	pf := bench.NewPerf(c.bench...)
	for i := range n {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		pf.Start()
		values := sample(perfSampleSize, i)
		_ = pf.Checkpoint("generate")
		sorted := sortCopy(values)
		_ = pf.Checkpoint("sort")
		bench.Keep(sum(sorted))
		_ = pf.Checkpoint("sum")
	}

	rep := pf.Report()
	if err := c.printer.PrintPerf(rep); err != nil {
		return err
	}
	if c.exporter != nil {
		if err := c.exporter.ExportPerf(rep); err != nil {
			return err
		}
	}
	return c.flush()
}
