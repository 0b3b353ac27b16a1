package utils_test

import (
	"context"
	"testing"
	"time"

	"github.com/amora-app/amora/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestContextSleep(t *testing.T) {
	t.Parallel()

	t.Run("completes normally", func(t *testing.T) {
		t.Parallel()

		start := time.Now()
		result := utils.ContextSleep(t.Context(), 50*time.Millisecond)

		assert.Equal(t, utils.SleepCompleted, result)
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("cancelled mid-sleep", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		result := utils.ContextSleep(ctx, time.Minute)
		assert.Equal(t, utils.SleepCancelled, result)
	})
}

func TestContextSleepUntil(t *testing.T) {
	t.Parallel()

	t.Run("past target returns immediately", func(t *testing.T) {
		t.Parallel()

		result := utils.ContextSleepUntil(t.Context(), time.Now().Add(-time.Hour), nil, "")
		assert.Equal(t, utils.SleepCompleted, result)
	})

	t.Run("cancelled before target", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		result := utils.ContextSleepUntil(ctx, time.Now().Add(time.Minute), nil, "")
		assert.Equal(t, utils.SleepCancelled, result)
	})
}

func TestContextGuard(t *testing.T) {
	t.Parallel()

	assert.False(t, utils.ContextGuard(t.Context()))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.True(t, utils.ContextGuard(ctx))
}

func TestErrorSleep(t *testing.T) {
	t.Parallel()

	assert.True(t, utils.ErrorSleep(t.Context(), 10*time.Millisecond, nil, "test worker"))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.False(t, utils.ErrorSleep(ctx, time.Minute, nil, "test worker"))
}
