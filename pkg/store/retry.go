package store

import (
	"context"
	"time"
)

// Connection retry defaults for Open.
const (
	connectAttempts = 4
	connectDelay    = 250 * time.Millisecond
)

// retry calls fn up to attempts times with exponential backoff, starting at
// delay. It stops early when fn succeeds, when retryable reports false for
// its error, or when ctx is done.
func retry(ctx context.Context, attempts int, delay time.Duration, retryable func(error) bool, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if lastErr = fn(); lastErr == nil {
			return nil
		} else if !retryable(lastErr) {
			return lastErr
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
