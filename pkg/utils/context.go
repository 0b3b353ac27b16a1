package utils

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SleepResult represents the outcome of a context-aware sleep operation.
type SleepResult int

const (
	// SleepCompleted indicates the sleep duration completed normally.
	SleepCompleted SleepResult = iota
	// SleepCancelled indicates the context was cancelled during sleep.
	SleepCancelled
)

// ContextSleep sleeps for the specified duration while respecting context
// cancellation.
func ContextSleep(ctx context.Context, duration time.Duration) SleepResult {
	select {
	case <-time.After(duration):
		return SleepCompleted
	case <-ctx.Done():
		return SleepCancelled
	}
}

// ContextSleepUntil waits until the specified time while respecting context
// cancellation, logging a message if the context is cancelled.
func ContextSleepUntil(ctx context.Context, target time.Time, logger *zap.Logger, cancelMessage string) SleepResult {
	duration := time.Until(target)
	if duration <= 0 {
		return SleepCompleted
	}

	if ContextSleep(ctx, duration) == SleepCancelled {
		if logger != nil && cancelMessage != "" {
			logger.Info(cancelMessage)
		}

		return SleepCancelled
	}

	return SleepCompleted
}

// ContextGuard checks if the context is cancelled and returns true if so.
// Useful at the top of loops before starting long-running operations.
func ContextGuard(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// ErrorSleep pauses after an error before retrying, respecting context
// cancellation. Returns true if the worker should continue.
func ErrorSleep(ctx context.Context, duration time.Duration, logger *zap.Logger, workerName string) bool {
	if ContextSleep(ctx, duration) == SleepCancelled {
		if logger != nil {
			logger.Info("Context cancelled during error wait, stopping " + workerName)
		}

		return false
	}

	return true
}
