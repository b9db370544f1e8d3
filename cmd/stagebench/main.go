// Package main is the entry point of the stagebench demo CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	sbcli "github.com/NikitaCOEUR/stagebench/internal/cli"
	"github.com/NikitaCOEUR/stagebench/internal/trace"
	"github.com/NikitaCOEUR/stagebench/pkg/version"
)

func main() {
	stopTrace := trace.Init()

	err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args)
	stopTrace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the command tree writing to out and errOut
func newApp(out, errOut io.Writer) *cli.Command {
	params := func(cmd *cli.Command) sbcli.Params {
		p := sbcli.Params{
			ConfigPath:  cmd.String("config"),
			Format:      cmd.String("format"),
			Color:       cmd.String("color"),
			LogLevel:    cmd.String("log-level"),
			Iterations:  cmd.Uint64("iterations"),
			Reference:   cmd.String("reference"),
			MetricsFile: cmd.String("metrics-file"),
			Out:         out,
			Err:         errOut,
		}
		if cmd.IsSet("warmup") {
			d := cmd.Duration("warmup")
			p.Warmup = &d
		}
		return p
	}

	iterationsFlag := func() cli.Flag {
		return &cli.Uint64Flag{
			Name:    "iterations",
			Aliases: []string{"n"},
			Value:   sbcli.DefaultIterations,
			Usage:   "Iterations per stage",
		}
	}

	return &cli.Command{
		Name:      "stagebench",
		Usage:     "Compare named code stages by throughput, latency and checkpoints",
		Version:   fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.GitCommit, version.BuildTime),
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (yaml, toml or json)",
				Sources: cli.EnvVars("STAGEBENCH_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (text, json, yaml)",
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "Color output (auto, always, never)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.DurationFlag{
				Name:  "warmup",
				Usage: "CPU warmup before measuring (0 disables)",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write Prometheus metrics to this textfile",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "compare",
				Usage: "Run formatting stages and compare their throughput",
				Flags: []cli.Flag{
					iterationsFlag(),
					&cli.StringFlag{
						Name:    "reference",
						Aliases: []string{"r"},
						Usage:   "Stage the others are compared against",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return sbcli.Compare(ctx, params(cmd))
				},
			},
			{
				Name:  "latency",
				Usage: "Measure avg/min/max latency of single sorts",
				Flags: []cli.Flag{iterationsFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return sbcli.Latency(ctx, params(cmd))
				},
			},
			{
				Name:  "perf",
				Usage: "Split a generate/sort/sum pipeline into checkpoints",
				Flags: []cli.Flag{iterationsFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return sbcli.Perf(ctx, params(cmd))
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema of the config file",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return sbcli.Schema(outputPath, out)
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a config file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					path := cmd.Args().First()
					if path == "" {
						path = cmd.String("config")
					}
					return sbcli.Validate(path, out)
				},
			},
		},
	}
}
