package bench

import (
	"io"
	"os"

	"github.com/NikitaCOEUR/stagebench/internal/logger"
	"github.com/NikitaCOEUR/stagebench/pkg/timing"
)

// Option configures an engine
type Option func(*settings)

type settings struct {
	clock timing.Clock
	log   *logger.Logger
}

func newSettings(opts []Option) settings {
	s := settings{
		clock: timing.System,
		log:   logger.New(logger.DefaultLevel, os.Stderr),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithClock replaces the system clock, mostly for tests
func WithClock(c timing.Clock) Option {
	return func(s *settings) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogOutput sends usage errors and progress messages to w at level
// (debug, info, warn, error). A nil writer silences logging.
func WithLogOutput(w io.Writer, level string) Option {
	return func(s *settings) {
		if w == nil {
			s.log = logger.Nop()
			return
		}
		s.log = logger.New(level, w)
	}
}
