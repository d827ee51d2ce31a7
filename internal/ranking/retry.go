package ranking

import (
	"context"
	"time"
)

// withRetry runs op up to attempts times, sleeping delay between failed
// attempts. It returns nil on the first success, the last attempt's error
// once attempts are exhausted, or the context error if the wait is cut short.
func withRetry(ctx context.Context, attempts int, delay time.Duration, sleep SleepFunc, op func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt < attempts {
			if err := sleep(ctx, delay); err != nil {
				return lastErr
			}
		}
	}
	return lastErr
}
