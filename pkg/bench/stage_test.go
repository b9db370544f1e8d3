package bench

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/stagebench/pkg/derrors"
)

func TestStage_StartStop(t *testing.T) {
	st := NewStage("encode")

	st.Start(epoch)
	assert.True(t, st.Running())

	require.NoError(t, st.Stop(epoch.Add(2*time.Second), 1000, 0))
	assert.False(t, st.Running())
	assert.Equal(t, 2*time.Second, st.Elapsed())
	assert.Equal(t, uint64(1000), st.Iterations())
	assert.Equal(t, uint64(1000), st.Successes())
	assert.Equal(t, uint64(0), st.Errors())
	assert.InDelta(t, 500.0, st.OpsPerSecond(), 1e-9)
	assert.InDelta(t, 2_000_000.0, st.NsPerOp(), 1e-9)
}

func TestStage_SuccessesAndErrorRate(t *testing.T) {
	tests := []struct {
		name       string
		iterations uint64
		errs       uint64
	}{
		{"no errors", 10, 0},
		{"some errors", 8, 2},
		{"all errors", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStage(tt.name)
			st.Start(epoch)
			require.NoError(t, st.Stop(epoch.Add(time.Second), tt.iterations, tt.errs))

			assert.Equal(t, tt.iterations-tt.errs, st.Successes())
			assert.Equal(t, tt.errs, st.Errors())
			assert.InDelta(t, float64(tt.errs)/float64(tt.iterations), st.ErrorRate(), 1e-12)
		})
	}
}

func TestStage_ZeroElapsed(t *testing.T) {
	st := NewStage("empty")
	st.Start(epoch)
	require.NoError(t, st.Stop(epoch, 0, 0))

	assert.True(t, math.IsNaN(st.OpsPerSecond()))
	assert.True(t, math.IsNaN(st.NsPerOp()))
	assert.Equal(t, 0.0, st.ErrorRate())

	var zero Stage
	assert.True(t, math.IsNaN(zero.OpsPerSecond()))
}

func TestStage_ResumeAccumulates(t *testing.T) {
	st := NewStage("resume")

	st.Start(epoch)
	require.NoError(t, st.Stop(epoch.Add(time.Second), 10, 1))

	st.Start(epoch.Add(5 * time.Second))
	require.NoError(t, st.Stop(epoch.Add(7*time.Second), 20, 2))

	assert.Equal(t, 3*time.Second, st.Elapsed())
	assert.Equal(t, uint64(30), st.Iterations())
	assert.Equal(t, uint64(3), st.Errors())
	assert.Equal(t, uint64(27), st.Successes())
}

func TestStage_RestartWhileRunning(t *testing.T) {
	st := NewStage("restart")
	st.Start(epoch)
	st.Start(epoch.Add(10 * time.Second))
	require.NoError(t, st.Stop(epoch.Add(11*time.Second), 1, 0))

	assert.Equal(t, time.Second, st.Elapsed())
}

func TestStage_StopWithoutStart(t *testing.T) {
	st := NewStage("idle")

	err := st.Stop(epoch, 10, 0)
	require.Error(t, err)
	assert.True(t, derrors.HasCode(err, derrors.CodeStopWithoutStart))
	assert.Equal(t, uint64(0), st.Iterations())
	assert.Equal(t, time.Duration(0), st.Elapsed())
}

func TestStage_DoubleStop(t *testing.T) {
	st := NewStage("twice")
	st.Start(epoch)
	require.NoError(t, st.Stop(epoch.Add(time.Second), 5, 0))

	err := st.Stop(epoch.Add(3*time.Second), 5, 0)
	assert.True(t, derrors.HasCode(err, derrors.CodeStopWithoutStart))
	assert.Equal(t, time.Second, st.Elapsed())
	assert.Equal(t, uint64(5), st.Iterations())
}

func TestStage_ErrorsExceedIterations(t *testing.T) {
	st := NewStage("bad")
	st.Start(epoch)

	err := st.Stop(epoch.Add(time.Second), 3, 4)
	assert.True(t, derrors.HasCode(err, derrors.CodeInvalidCount))
	assert.True(t, st.Running(), "stage keeps running so the caller can retry")
	assert.Equal(t, uint64(0), st.Iterations())

	require.NoError(t, st.Stop(epoch.Add(time.Second), 4, 3))
	assert.Equal(t, uint64(1), st.Successes())
}

func TestStage_ClockWentBackward(t *testing.T) {
	st := NewStage("skew")
	st.Start(epoch.Add(time.Second))

	err := st.Stop(epoch, 10, 0)
	assert.True(t, derrors.HasCode(err, derrors.CodeClockSkew))
	assert.Equal(t, time.Duration(0), st.Elapsed())
	assert.Equal(t, uint64(10), st.Iterations())
	assert.False(t, st.Running())
}

func TestStage_Reset(t *testing.T) {
	st := NewStage("reset")
	st.Start(epoch)
	require.NoError(t, st.Stop(epoch.Add(time.Second), 10, 2))

	st.Reset()
	assert.Equal(t, "reset", st.Name())
	assert.Equal(t, time.Duration(0), st.Elapsed())
	assert.Equal(t, uint64(0), st.Iterations())
	assert.Equal(t, uint64(0), st.Errors())
}
