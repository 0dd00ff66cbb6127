// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Backoff yields exponentially growing delays between Initial and Max.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration

	current time.Duration
}

// Next returns the next delay and doubles the following one, capped at Max.
func (b *Backoff) Next() time.Duration {
	if b.current <= 0 {
		b.current = b.Initial
	}
	if b.current <= 0 {
		b.current = time.Second
	}
	d := b.current
	if b.Max > 0 && d > b.Max {
		d = b.Max
	}
	b.current = d * 2
	return d
}

// Reset restarts the sequence at Initial.
func (b *Backoff) Reset() {
	b.current = 0
}

// Retry calls fn until it succeeds, the context ends, or fn returns an error for which
// retryable reports false. Delays between attempts follow b.
func Retry(ctx context.Context, b *Backoff, retryable func(error) bool, fn func(context.Context) error) error {
	for {
		err := fn(ctx)
		if err == nil {
			b.Reset()
			return nil
		}
		if retryable != nil && !retryable(err) {
			return err
		}
		if sleepErr := SleepWithContext(ctx, b.Next()); sleepErr != nil {
			return sleepErr
		}
	}
}
