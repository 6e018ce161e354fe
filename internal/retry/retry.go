// Package retry provides a small retry policy for transient network
// failures: a bounded attempt count and a pluggable delay function,
// independent of the timer primitive underneath.
package retry

import (
	"context"
	"time"
)

// Policy describes how an operation is retried. The zero value performs a
// single attempt with no retries.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// Delay maps a zero-based retry index to the wait before that retry.
	// Nil means no delay.
	Delay func(retry int) time.Duration
}

// Backoff returns a delay function that doubles from base on every retry.
func Backoff(base time.Duration) func(int) time.Duration {
	return func(retry int) time.Duration {
		return base << retry
	}
}

// Do runs op until it succeeds, attempts are exhausted, or ctx is done. The
// last error is returned.
func (p Policy) Do(ctx context.Context, op func() error) error {
	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 && p.Delay != nil {
			if err := Sleep(ctx, p.Delay(attempt-1)); err != nil {
				return err
			}
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op()
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
