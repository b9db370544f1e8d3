package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/NikitaCOEUR/stagebench/pkg/bench"
)

// ResultsTitle is the title of the separator printed above results
const ResultsTitle = "Benchmark results"

// Printer writes reports to an output in the configured style
type Printer struct {
	w     io.Writer
	style Style
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer, style Style) *Printer {
	if style.Format == "" {
		style.Format = FormatText
	}
	return &Printer{w: w, style: style}
}

// Style returns the printer style
func (p *Printer) Style() Style {
	return p.style
}

// PrintAll prints every stage of reg
func (p *Printer) PrintAll(reg *bench.Registry) error {
	return p.PrintReport(reg.Report())
}

// PrintFor prints every stage of reg relative to reference. An unknown
// reference still prints the table, without speed factors, and returns the
// lookup error.
func (p *Printer) PrintFor(reg *bench.Registry, reference string) error {
	rep, refErr := reg.ReportFor(reference)
	if err := p.PrintReport(rep); err != nil {
		return err
	}
	return refErr
}

// PrintReport prints a comparison report
func (p *Printer) PrintReport(rep bench.Report) error {
	if p.style.Format != FormatText {
		return Encode(p.w, p.style.Format, rep)
	}
	return p.text(HeaderData{Title: ResultsTitle, Reference: rep.Reference, Rows: len(rep.Rows)},
		Table(rep, p.style))
}

// PrintRun prints a single-stage result
func (p *Printer) PrintRun(row bench.Row) error {
	if p.style.Format != FormatText {
		return Encode(p.w, p.style.Format, row)
	}
	return p.text(HeaderData{Title: ResultsTitle, Rows: 1}, Run(row, p.style))
}

// PrintLatency prints a latency summary on one line
func (p *Printer) PrintLatency(s bench.LatencySummary) error {
	if p.style.Format != FormatText {
		return Encode(p.w, p.style.Format, s)
	}
	_, err := fmt.Fprintln(p.w, Latency(s, p.style))
	return err
}

// PrintPerf prints a checkpoint report
func (p *Printer) PrintPerf(rep bench.PerfReport) error {
	if p.style.Format != FormatText {
		return Encode(p.w, p.style.Format, rep)
	}
	return p.text(HeaderData{Title: "Perf results", Rows: len(rep.Rows)}, Perf(rep, p.style))
}

func (p *Printer) text(data HeaderData, body string) error {
	line, tmplErr := separatorLine(p.style, data)
	if _, err := fmt.Fprintf(p.w, "%s\n%s\n", line, body); err != nil {
		return errors.Join(err, tmplErr)
	}
	return tmplErr
}
