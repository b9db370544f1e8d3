package bench

import (
	"bytes"
	"time"

	"github.com/NikitaCOEUR/stagebench/pkg/timing"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// testEngine returns a manual clock plus options wiring it in, with log
// output captured in buf.
func testEngine() (*timing.Manual, *bytes.Buffer, []Option) {
	clock := timing.NewManual(epoch)
	buf := &bytes.Buffer{}
	return clock, buf, []Option{WithClock(clock), WithLogOutput(buf, "warn")}
}
