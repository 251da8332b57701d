package orchestrator

import (
	"context"
	"testing"
	"time"
)

func TestPollUntilStopsOnSuccess(t *testing.T) {
	clock := &fakeClock{}
	calls := 0
	got, n := pollUntil(context.Background(), clock, time.Second, 10,
		func(context.Context) int { calls++; return calls },
		func(v int) bool { return v == 3 },
	)
	if got != 3 || n != 3 { t.Fatalf("got=%d n=%d", got, n) }
	if len(clock.sleeps) != 2 { t.Fatalf("sleeps=%d", len(clock.sleeps)) }
}

func TestPollUntilHonorsCeiling(t *testing.T) {
	clock := &fakeClock{}
	calls := 0
	_, n := pollUntil(context.Background(), clock, time.Second, 7,
		func(context.Context) int { calls++; return calls },
		func(int) bool { return false },
	)
	if n != 7 || calls != 7 { t.Fatalf("n=%d calls=%d", n, calls) }
	// No sleep after the final attempt.
	if len(clock.sleeps) != 6 { t.Fatalf("sleeps=%d", len(clock.sleeps)) }
}

func TestPollUntilImmediateSuccessNeverSleeps(t *testing.T) {
	clock := &fakeClock{}
	_, n := pollUntil(context.Background(), clock, time.Second, 10,
		func(context.Context) bool { return true },
		func(v bool) bool { return v },
	)
	if n != 1 { t.Fatalf("n=%d", n) }
	if len(clock.sleeps) != 0 { t.Fatalf("sleeps=%d", len(clock.sleeps)) }
}

func TestPollUntilStopsWhenSleepCanceled(t *testing.T) {
	clock := &fakeClock{cancelAfter: 1}
	calls := 0
	_, n := pollUntil(context.Background(), clock, time.Second, 10,
		func(context.Context) int { calls++; return calls },
		func(int) bool { return false },
	)
	if n != 1 || calls != 1 { t.Fatalf("n=%d calls=%d", n, calls) }
}
