package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithRetryStopsOnSuccess(t *testing.T) {
	calls := 0
	err := withRetry(3, 0, func() error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	failure := errors.New("element not attached")
	err := withRetry(3, 0, func() error {
		calls++
		return failure
	})

	assert.Equal(t, failure, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetrySucceedsMidway(t *testing.T) {
	calls := 0
	err := withRetry(5, 0, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryClampsToOneAttempt(t *testing.T) {
	calls := 0
	err := withRetry(0, 0, func() error {
		calls++
		return errors.New("nope")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryBackoffGrows(t *testing.T) {
	start := time.Now()
	_ = withRetry(3, 5*time.Millisecond, func() error {
		return errors.New("always")
	})

	// Two waits: 5ms after attempt one, 10ms after attempt two.
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestIsRetryableStatus(t *testing.T) {
	assert.False(t, isRetryableStatus(200))
	assert.False(t, isRetryableStatus(302))
	assert.False(t, isRetryableStatus(399))
	assert.True(t, isRetryableStatus(400))
	assert.True(t, isRetryableStatus(404))
	assert.True(t, isRetryableStatus(500))
	assert.True(t, isRetryableStatus(503))
}
