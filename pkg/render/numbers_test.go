package render

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/NikitaCOEUR/stagebench/pkg/timing"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		n    uint64
		sep  string
		want string
	}{
		{"small", 999, "_", "999"},
		{"underscore", 1234567, "_", "1_234_567"},
		{"comma", 1234567, ",", "1,234,567"},
		{"space", 1000, " ", "1 000"},
		{"max", math.MaxUint64, "_", "18_446_744_073_709_551_615"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.n, tt.sep))
		})
	}
}

func TestThroughput(t *testing.T) {
	assert.Equal(t, "2_000", Throughput(2000.4, "_"))
	assert.Equal(t, "1_001", Throughput(1000.6, "_"))
	assert.Equal(t, Missing, Throughput(math.NaN(), "_"))
	assert.Equal(t, Missing, Throughput(math.Inf(1), "_"))
	assert.Equal(t, "100_000_000_000_000_000_000", Throughput(1e20, "_"))
	assert.Equal(t, "18,446,744,073,709,551,616", Throughput(math.MaxUint64, ","))
}

func TestPercentAndFactor(t *testing.T) {
	assert.Equal(t, "12.50 %", Percent(0.125))
	assert.Equal(t, "0.00 %", Percent(0))
	assert.Equal(t, "x2.00", Factor(2))
	assert.Equal(t, "x0.50", Factor(0.5))
	assert.Equal(t, Missing, Factor(math.NaN()))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "1.500", Duration(1500*time.Millisecond, timing.Seconds))
	assert.Equal(t, "1500.000", Duration(1500*time.Millisecond, timing.Milliseconds))
	assert.Equal(t, "2.500", Duration(2500*time.Nanosecond, timing.Microseconds))
}
