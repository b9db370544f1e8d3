//go:build !dev

// Package trace wraps benchmark stages in runtime/trace regions for
// development builds. This is the release version with no-op stubs.
package trace

import "context"

// Init is a no-op in release builds.
func Init() func() {
	return func() {}
}

// Region is a no-op in release builds.
func Region(_ context.Context, _ string) func() {
	return func() {}
}

// Log is a no-op in release builds.
func Log(_ context.Context, _, _ string) {
}

// IsEnabled always reports false in release builds.
func IsEnabled() bool {
	return false
}
