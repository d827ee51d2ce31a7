package ranking

import (
	"context"
	"errors"
	"testing"
	"time"
)

func countingSleep(calls *int) SleepFunc {
	return func(ctx context.Context, d time.Duration) error {
		*calls++
		return nil
	}
}

func TestWithRetryFirstSuccess(t *testing.T) {
	var sleeps, attempts int
	err := withRetry(context.Background(), 3, time.Second, countingSleep(&sleeps), func(ctx context.Context) error {
		attempts++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
	if sleeps != 0 {
		t.Fatalf("expected no sleeps on first success, got %d", sleeps)
	}
}

func TestWithRetryEventualSuccess(t *testing.T) {
	var sleeps, attempts int
	err := withRetry(context.Background(), 3, time.Second, countingSleep(&sleeps), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
	if sleeps != 2 {
		t.Fatalf("expected a sleep between each failed attempt, got %d", sleeps)
	}
}

func TestWithRetryExhausted(t *testing.T) {
	var sleeps, attempts int
	last := errors.New("attempt 3 failed")
	err := withRetry(context.Background(), 3, time.Second, countingSleep(&sleeps), func(ctx context.Context) error {
		attempts++
		if attempts == 3 {
			return last
		}
		return errors.New("earlier failure")
	})
	if !errors.Is(err, last) {
		t.Fatalf("expected last attempt's error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
	// No sleep after the final attempt.
	if sleeps != 2 {
		t.Fatalf("expected 2 sleeps, got %d", sleeps)
	}
}

func TestWithRetryStopsWhenSleepInterrupted(t *testing.T) {
	opErr := errors.New("still failing")
	var attempts int
	err := withRetry(context.Background(), 5, time.Second,
		func(ctx context.Context, d time.Duration) error { return context.Canceled },
		func(ctx context.Context) error {
			attempts++
			return opErr
		})
	if !errors.Is(err, opErr) {
		t.Fatalf("expected the op error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected no further attempts after interrupted sleep, got %d", attempts)
	}
}

func TestWithRetryAtLeastOneAttempt(t *testing.T) {
	var attempts int
	_ = withRetry(context.Background(), 0, 0, countingSleep(new(int)), func(ctx context.Context) error {
		attempts++
		return nil
	})
	if attempts != 1 {
		t.Fatalf("expected exactly 1 attempt, got %d", attempts)
	}
}
