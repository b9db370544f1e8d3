package derrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsageError(t *testing.T) {
	err := NewUsageError(CodeStopWithoutStart, "stop", "parse", "stage parse is not running")

	assert.Equal(t, "STOP_WITHOUT_START", err.Code())
	assert.Equal(t, "stop", err.Op)
	assert.Equal(t, "parse", err.Subject)
	assert.Contains(t, err.Error(), "stage parse is not running")
	assert.Nil(t, errors.Unwrap(err))
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("stage", "stage encode not found")

	assert.Equal(t, "NOT_FOUND", err.Code())
	assert.Equal(t, "stage", err.Resource)
	assert.Contains(t, err.Error(), "stage encode not found")
	assert.Nil(t, errors.Unwrap(err))
}

func TestClockError(t *testing.T) {
	err := NewClockError("latency", "negative duration -5ms ignored")

	assert.Equal(t, "CLOCK_SKEW", err.Code())
	assert.Equal(t, "latency", err.Subject)
	assert.Contains(t, err.Error(), "negative duration")
}

func TestBaseError_WithCause(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := &UsageError{baseError: baseError{code: CodeInvalidCount, message: "bad count", cause: cause}}

	assert.Equal(t, "bad count: underlying", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestHasCode(t *testing.T) {
	err := NewUsageError(CodeNoCurrentStage, "finish_current", "", "no current stage")
	wrapped := fmt.Errorf("benchmark: %w", err)

	assert.True(t, HasCode(err, CodeNoCurrentStage))
	assert.True(t, HasCode(wrapped, CodeNoCurrentStage))
	assert.False(t, HasCode(wrapped, CodeNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
	assert.False(t, HasCode(nil, CodeNotFound))
}

func TestBenchErrorInterface(t *testing.T) {
	var _ BenchError = NewUsageError(CodeEmptyName, "start", "", "empty")
	var _ BenchError = NewNotFoundError("stage", "missing")
	var _ BenchError = NewClockError("stage", "skew")

	var usage *UsageError
	assert.True(t, errors.As(fmt.Errorf("wrap: %w", NewUsageError(CodeEmptyName, "start", "", "empty")), &usage))
	assert.Equal(t, "start", usage.Op)
}
