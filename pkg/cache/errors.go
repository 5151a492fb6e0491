package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a remote backend (Redis, MongoDB) that could not be
// reached. Cache callers treat it like a miss.
var ErrNetwork = errors.New("cache backend unavailable")

// transient wraps a failure worth retrying.
type transient struct{ err error }

func (e *transient) Error() string { return e.err.Error() }
func (e *transient) Unwrap() error { return e.err }

// Retryable marks err as transient. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &transient{err: err}
}

// IsRetryable reports whether err, or an error it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var t *transient
	return errors.As(err, &t)
}

// RetryDelay is the first backoff delay of [RetryWithBackoff]. It doubles
// after every failed attempt.
var RetryDelay = 200 * time.Millisecond

const retryAttempts = 3

// RetryWithBackoff runs fn until it succeeds, returns an error not marked
// with [Retryable], or has failed three times.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := RetryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
