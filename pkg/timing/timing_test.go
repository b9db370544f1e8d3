package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual_Advance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewManual(start)

	assert.Equal(t, start, clock.Now())

	clock.Advance(10 * time.Millisecond)
	assert.Equal(t, start.Add(10*time.Millisecond), clock.Now())

	clock.Set(start)
	assert.Equal(t, start, clock.Now())
}

func TestSystem_Monotonic(t *testing.T) {
	a := System.Now()
	time.Sleep(time.Millisecond)
	b := System.Now()

	d, clamped := Between(a, b)
	assert.False(t, clamped)
	assert.GreaterOrEqual(t, d, time.Millisecond)
}

func TestBetween(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		start, end  time.Time
		want        time.Duration
		wantClamped bool
	}{
		{"forward", base, base.Add(time.Second), time.Second, false},
		{"same instant", base, base, 0, false},
		{"clock went backward", base.Add(time.Second), base, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, clamped := Between(tt.start, tt.end)
			assert.Equal(t, tt.want, d)
			assert.Equal(t, tt.wantClamped, clamped)
		})
	}
}

func TestSubSat(t *testing.T) {
	assert.Equal(t, 5*time.Millisecond, SubSat(10*time.Millisecond, 5*time.Millisecond))
	assert.Equal(t, time.Duration(0), SubSat(5*time.Millisecond, 10*time.Millisecond))
	assert.Equal(t, time.Duration(0), SubSat(time.Second, time.Second))
}

func TestUnitFor(t *testing.T) {
	tests := []struct {
		name      string
		durations []time.Duration
		want      Unit
	}{
		{"empty", nil, Microseconds},
		{"all zero", []time.Duration{0, 0}, Microseconds},
		{"sub microsecond", []time.Duration{500 * time.Nanosecond}, Microseconds},
		{"microseconds", []time.Duration{20 * time.Microsecond, 999 * time.Microsecond}, Microseconds},
		{"largest decides", []time.Duration{20 * time.Microsecond, 3 * time.Millisecond}, Milliseconds},
		{"seconds", []time.Duration{time.Millisecond, 1500 * time.Millisecond}, Seconds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnitFor(tt.durations...))
		})
	}
}

func TestUnit_Convert(t *testing.T) {
	d := 1500 * time.Millisecond

	assert.InDelta(t, 1.5, Seconds.Convert(d), 1e-9)
	assert.InDelta(t, 1500.0, Milliseconds.Convert(d), 1e-9)
	assert.InDelta(t, 1_500_000.0, Microseconds.Convert(d), 1e-9)

	assert.Equal(t, "s", Seconds.Suffix())
	assert.Equal(t, "ms", Milliseconds.Suffix())
	assert.Equal(t, "μs", Microseconds.Suffix())
	assert.Equal(t, "milliseconds", Milliseconds.Name())
}
