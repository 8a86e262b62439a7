package asc

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrHourlyLimitReached is returned when the hourly request budget is spent.
var ErrHourlyLimitReached = errors.New("hourly API limit reached")

const usageWindow = time.Hour

// RateLimiter paces outgoing requests with a token bucket and tracks usage
// against App Store Connect's rolling hourly budget.
type RateLimiter struct {
	limiter   *rate.Limiter
	maxHourly int64
	nowFunc   func() time.Time

	mu      sync.Mutex
	used    int64
	resetAt time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a limiter allowing perHour requests per rolling
// hour, with bursts of up to burst requests.
func NewRateLimiter(perHour int64, burst int, opts ...RateLimiterOption) *RateLimiter {
	r := &RateLimiter{
		limiter:   rate.NewLimiter(rate.Limit(float64(perHour)/usageWindow.Seconds()), burst),
		maxHourly: perHour,
		nowFunc:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.nowFunc().Add(usageWindow)
	return r
}

// Wait blocks until a request may be sent or ctx is done. It returns
// ErrHourlyLimitReached without blocking once the budget is spent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	now := r.nowFunc()
	if now.After(r.resetAt) {
		r.used = 0
		r.resetAt = now.Add(usageWindow)
	}
	if r.used >= r.maxHourly {
		used := r.used
		r.mu.Unlock()
		return fmt.Errorf("%w (%d/%d)", ErrHourlyLimitReached, used, r.maxHourly)
	}
	r.used++
	r.mu.Unlock()

	if err := r.limiter.Wait(ctx); err != nil {
		r.mu.Lock()
		r.used--
		r.mu.Unlock()
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

// MaxHourly returns the configured hourly request budget.
func (r *RateLimiter) MaxHourly() int64 {
	return r.maxHourly
}

// HourlyCount returns the number of requests in the current window.
func (r *RateLimiter) HourlyCount() int64 {
	used, _ := r.window()
	return used
}

// Remaining returns the requests left in the current window.
func (r *RateLimiter) Remaining() int64 {
	used, _ := r.window()
	return max(r.maxHourly-used, 0)
}

// ResetAt returns when the current window expires.
func (r *RateLimiter) ResetAt() time.Time {
	_, resetAt := r.window()
	return resetAt
}

// window reports usage as of now. An expired window reads as empty until the
// next Wait starts a new one.
func (r *RateLimiter) window() (int64, time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.nowFunc()
	if now.After(r.resetAt) {
		return 0, now.Add(usageWindow)
	}
	return r.used, r.resetAt
}
