package orchestrator

import (
	"context"
	"time"
)

// pollUntil invokes fn once per interval up to maxAttempts times, returning
// the last result and the number of attempts made. done short-circuits the
// loop; a canceled context stops it after the current attempt. The loop is
// bounded: it runs at most maxAttempts probes and sleeps between them only.
func pollUntil[T any](ctx context.Context, clock Clock, interval time.Duration, maxAttempts int, fn func(context.Context) T, done func(T) bool) (T, int) {
	var last T
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		last = fn(ctx)
		if done(last) {
			return last, attempt
		}
		if attempt == maxAttempts {
			break
		}
		if err := clock.Sleep(ctx, interval); err != nil {
			return last, attempt
		}
	}
	return last, maxAttempts
}
