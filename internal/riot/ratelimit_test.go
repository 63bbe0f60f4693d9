package riot

import (
	"testing"
	"time"
)

// fakeClock drives a limiter deterministically: sleeps advance the clock
// instead of blocking.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeLimiter(shortLimit, longLimit int) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	r := NewRateLimiter(shortLimit, longLimit)
	r.now = func() time.Time { return clock.now }
	r.sleep = func(d time.Duration) {
		clock.sleeps = append(clock.sleeps, d)
		clock.now = clock.now.Add(d)
	}
	return r, clock
}

func TestWaitIfNeededUnderLimit(t *testing.T) {
	r, clock := newFakeLimiter(3, 10)

	for i := 0; i < 3; i++ {
		r.WaitIfNeeded()
		r.RecordRequest()
	}
	if len(clock.sleeps) != 0 {
		t.Fatalf("expected no sleeps under the limit, got %v", clock.sleeps)
	}
}

func TestWaitIfNeededShortWindow(t *testing.T) {
	r, clock := newFakeLimiter(2, 10)

	r.WaitIfNeeded()
	r.RecordRequest()
	clock.now = clock.now.Add(300 * time.Millisecond)
	r.WaitIfNeeded()
	r.RecordRequest()

	// Third request arrives with the window full; it must wait exactly
	// until the oldest entry leaves the one-second window.
	clock.now = clock.now.Add(100 * time.Millisecond)
	r.WaitIfNeeded()

	if len(clock.sleeps) != 1 {
		t.Fatalf("expected exactly one sleep, got %v", clock.sleeps)
	}
	if got, want := clock.sleeps[0], 600*time.Millisecond; got != want {
		t.Errorf("sleep = %v, want %v", got, want)
	}
}

func TestWaitIfNeededLongWindow(t *testing.T) {
	r, clock := newFakeLimiter(100, 3)

	for i := 0; i < 3; i++ {
		r.WaitIfNeeded()
		r.RecordRequest()
		clock.now = clock.now.Add(time.Second)
	}

	r.WaitIfNeeded()
	if len(clock.sleeps) != 1 {
		t.Fatalf("expected one sleep for the long window, got %v", clock.sleeps)
	}
	// Oldest entry is 3s old; it expires 117s from now.
	if got, want := clock.sleeps[0], 117*time.Second; got != want {
		t.Errorf("sleep = %v, want %v", got, want)
	}
}

func TestWindowExpiry(t *testing.T) {
	r, clock := newFakeLimiter(2, 10)

	r.WaitIfNeeded()
	r.RecordRequest()
	r.WaitIfNeeded()
	r.RecordRequest()

	// After the short window passes, capacity is back with no sleeping.
	clock.now = clock.now.Add(time.Second + time.Millisecond)
	r.WaitIfNeeded()
	if len(clock.sleeps) != 0 {
		t.Errorf("expected no sleep after window expiry, got %v", clock.sleeps)
	}
}

func TestNewRateLimiterDefaults(t *testing.T) {
	r := NewRateLimiter(0, -5)
	if r.shortLimit != DefaultShortLimit {
		t.Errorf("shortLimit = %d, want %d", r.shortLimit, DefaultShortLimit)
	}
	if r.longLimit != DefaultLongLimit {
		t.Errorf("longLimit = %d, want %d", r.longLimit, DefaultLongLimit)
	}
}
