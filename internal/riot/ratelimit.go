package riot

import (
	"sync"
	"time"
)

// Default request budgets, kept below Riot's published dev-key limits
// (20/s and 100/120s) as safety margin.
const (
	DefaultShortLimit = 15
	DefaultLongLimit  = 90

	shortWindow = time.Second
	longWindow  = 120 * time.Second
)

// RateLimiter bounds outbound call rate with two sliding windows: at most
// shortLimit requests in the last second and longLimit in the last two
// minutes. It is safe for concurrent use within one process but provides
// no coordination across processes.
type RateLimiter struct {
	mu         sync.Mutex
	shortLimit int
	longLimit  int
	short      []time.Time
	long       []time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewRateLimiter returns a limiter with the given window budgets.
// Non-positive limits fall back to the defaults.
func NewRateLimiter(shortLimit, longLimit int) *RateLimiter {
	if shortLimit <= 0 {
		shortLimit = DefaultShortLimit
	}
	if longLimit <= 0 {
		longLimit = DefaultLongLimit
	}
	return &RateLimiter{
		shortLimit: shortLimit,
		longLimit:  longLimit,
		now:        time.Now,
		sleep:      time.Sleep,
	}
}

// WaitIfNeeded blocks until both windows have spare capacity. When a bucket
// is full it sleeps exactly long enough for that bucket's oldest entry to
// expire, then re-checks.
func (r *RateLimiter) WaitIfNeeded() {
	for {
		r.mu.Lock()
		now := r.now()
		r.short = prune(r.short, now.Add(-shortWindow))
		r.long = prune(r.long, now.Add(-longWindow))

		var wait time.Duration
		if len(r.short) >= r.shortLimit {
			wait = r.short[0].Add(shortWindow).Sub(now)
		} else if len(r.long) >= r.longLimit {
			wait = r.long[0].Add(longWindow).Sub(now)
		}
		r.mu.Unlock()

		if wait <= 0 {
			return
		}
		r.sleep(wait)
	}
}

// RecordRequest appends the current timestamp to both windows.
func (r *RateLimiter) RecordRequest() {
	r.mu.Lock()
	now := r.now()
	r.short = append(r.short, now)
	r.long = append(r.long, now)
	r.mu.Unlock()
}

// prune drops timestamps at or before the horizon.
func prune(ts []time.Time, horizon time.Time) []time.Time {
	i := 0
	for i < len(ts) && !ts[i].After(horizon) {
		i++
	}
	return ts[i:]
}
