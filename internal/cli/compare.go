package cli

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/NikitaCOEUR/stagebench/pkg/bench"
	"github.com/NikitaCOEUR/stagebench/pkg/derrors"
)

// Compare runs the formatting workloads as stages and prints them against
// the reference stage
func Compare(ctx context.Context, p Params) error {
	c, err := initializeComponents(p)
	if err != nil {
		return err
	}
	if err := c.warmup(ctx); err != nil {
		return err
	}

	n := iterations(p.Iterations)
	reg := bench.NewRegistry(c.bench...)
	for _, w := range formatWorkloads() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := reg.Start(w.name); err != nil {
			return err
		}
		var failed uint64
		for i := range n {
			if !w.run(i) {
				failed++
			}
		}
		if err := reg.FinishCurrent(n, failed); err != nil && !derrors.HasCode(err, derrors.CodeClockSkew) {
			return err
		}
	}

	rep := reg.Report()
	if p.Reference == "" {
		if err := c.printer.PrintReport(rep); err != nil {
			return err
		}
	} else {
		if err := c.printer.PrintFor(reg, p.Reference); err != nil {
			return errors.Wrap(err, "reference stage")
		}
		rep, _ = reg.ReportFor(p.Reference)
	}

	if c.exporter != nil {
		if err := c.exporter.ExportReport(rep); err != nil {
			return err
		}
	}
	return c.flush()
}
