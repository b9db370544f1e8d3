package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/hako/durafmt"

	"github.com/NikitaCOEUR/stagebench/internal/logger"
	"github.com/NikitaCOEUR/stagebench/pkg/bench"
	"github.com/NikitaCOEUR/stagebench/pkg/config"
	"github.com/NikitaCOEUR/stagebench/pkg/promexport"
	"github.com/NikitaCOEUR/stagebench/pkg/render"
)

// DefaultIterations is the workload size when none is given
const DefaultIterations = 100_000

// Params contains the settings shared by benchmark commands. Empty fields
// fall back to the loaded config.
type Params struct {
	ConfigPath  string
	Format      string
	Color       string
	LogLevel    string
	Iterations  uint64
	Reference   string
	MetricsFile string
	// Warmup overrides the configured warmup when non-nil
	Warmup *time.Duration

	Out io.Writer
	Err io.Writer
}

// components holds everything a benchmark command needs
type components struct {
	opts     config.Options
	printer  *render.Printer
	log      *logger.Logger
	bench    []bench.Option
	exporter *promexport.Exporter
	metrics  string
}

// initializeComponents loads the config, applies command line overrides and
// builds the printer and optional exporter
func initializeComponents(p Params) (*components, error) {
	if p.Out == nil {
		p.Out = os.Stdout
	}
	if p.Err == nil {
		p.Err = os.Stderr
	}

	opts, err := config.Load(p.ConfigPath)
	if err != nil {
		return nil, err
	}
	if p.Format != "" {
		f, err := render.ParseFormat(p.Format)
		if err != nil {
			return nil, err
		}
		opts.Format = f
	}
	if p.Color != "" {
		m, err := render.ParseColorMode(p.Color)
		if err != nil {
			return nil, err
		}
		opts.Color = m
	}
	if p.LogLevel != "" {
		opts.LogLevel = p.LogLevel
	}
	if p.Warmup != nil {
		opts.Warmup = *p.Warmup
	}

	c := &components{
		opts:    opts,
		printer: render.NewPrinter(p.Out, opts.Style(p.Out)),
		log:     logger.New(opts.LogLevel, p.Err),
		bench:   opts.BenchOptions(p.Err),
		metrics: p.MetricsFile,
	}

	if p.MetricsFile != "" {
		c.exporter, err = promexport.New(promexport.Config{
			Namespace: opts.Metrics.Namespace,
			Subsystem: opts.Metrics.Subsystem,
		})
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

// warmup spins for the configured duration
func (c *components) warmup(ctx context.Context) error {
	if c.opts.Warmup <= 0 {
		return nil
	}
	c.log.Info().Str("duration", durafmt.Parse(c.opts.Warmup).LimitFirstN(2).String()).Msg("Warming up")
	return bench.Warmup(ctx, c.opts.Warmup)
}

// flush writes exported metrics to the textfile, if any
func (c *components) flush() error {
	if c.exporter == nil {
		return nil
	}
	defer func() { _ = c.exporter.Close() }()

	if err := c.exporter.WriteTextfile(c.metrics); err != nil {
		return err
	}
	c.log.Debug().Str("path", c.metrics).Msg("Metrics written")
	return nil
}

func iterations(n uint64) uint64 {
	if n == 0 {
		return DefaultIterations
	}
	return n
}
