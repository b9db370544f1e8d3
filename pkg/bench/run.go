package bench

import (
	"context"
	"runtime"
	"time"
)

// DefaultWarmup is how long Warmup spins when the caller has no preference
const DefaultWarmup = 5 * time.Second

// Run times fn over iterations calls on a fresh stage and returns its row
func Run(name string, iterations uint64, fn func(), opts ...Option) (Row, error) {
	reg := NewRegistry(opts...)
	err := reg.Run(name, iterations, fn)
	st, _ := reg.Get(name)
	return NewRow(st), err
}

// RunCheck is Run for workloads reporting success; false counts as an error
func RunCheck(name string, iterations uint64, fn func() bool, opts ...Option) (Row, error) {
	reg := NewRegistry(opts...)
	err := reg.RunCheck(name, iterations, fn)
	st, _ := reg.Get(name)
	return NewRow(st), err
}

// Warmup keeps the CPU busy for d so frequency scaling settles before a
// speed comparison. It returns early with the context error on cancellation.
func Warmup(ctx context.Context, d time.Duration) error {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}
		runtime.Gosched()
	}
	return nil
}

// Keep marks v as used so the compiler cannot discard the work producing it
func Keep[T any](v T) {
	runtime.KeepAlive(v)
}
