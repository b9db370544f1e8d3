// Package bench measures the duration and throughput of in-process code.
//
// Three engines share the timing primitives from pkg/timing:
//
//   - Registry runs named stages and builds a comparison Report, optionally
//     relative to a reference stage.
//   - LatencyTracker keeps running min/avg/max statistics of single operations.
//   - Perf attributes time to named checkpoints inside repeated iterations.
//
// None of the engines is safe for concurrent use. A multi-threaded workload is
// fine, but start/stop calls must come from one coordinating goroutine.
//
// Caller mistakes such as stopping a stage that never started are returned as
// errors from pkg/derrors and logged; they never panic and never corrupt the
// data already collected.
package bench
