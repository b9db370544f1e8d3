//go:build dev

// Package trace wraps benchmark stages in runtime/trace regions for
// development builds.
//
// Usage:
//
//	STAGEBENCH_TRACE=trace.out go run -tags dev ./cmd/stagebench compare
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	"runtime/trace"
	"sync"
)

var (
	traceFile   *os.File
	traceMu     sync.Mutex
	traceActive bool
)

// Init starts tracing if STAGEBENCH_TRACE names an output file.
// Returns a cleanup function that should be deferred.
func Init() func() {
	tracePath := os.Getenv("STAGEBENCH_TRACE")
	if tracePath == "" {
		return func() {}
	}

	traceMu.Lock()
	defer traceMu.Unlock()

	var err error
	traceFile, err = os.Create(tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stagebench: failed to create trace file %s: %v\n", tracePath, err)
		return func() {}
	}

	if err := trace.Start(traceFile); err != nil {
		fmt.Fprintf(os.Stderr, "stagebench: failed to start trace: %v\n", err)
		traceFile.Close()
		traceFile = nil
		return func() {}
	}

	traceActive = true

	return func() {
		traceMu.Lock()
		defer traceMu.Unlock()

		if traceActive {
			trace.Stop()
			traceActive = false
		}
		if traceFile != nil {
			traceFile.Close()
			traceFile = nil
		}
	}
}

// Region opens a region named after a stage. Call the returned function on
// the same goroutine to close it.
func Region(ctx context.Context, name string) func() {
	if !trace.IsEnabled() {
		return func() {}
	}
	return trace.StartRegion(ctx, name).End
}

// Log attaches a message to the trace, e.g. a usage error.
func Log(ctx context.Context, category, message string) {
	if trace.IsEnabled() {
		trace.Log(ctx, category, message)
	}
}

// IsEnabled returns true while a trace is being collected.
func IsEnabled() bool {
	return trace.IsEnabled()
}
