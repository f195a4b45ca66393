// Package ratelimit provides per-source outbound request pacing. Each
// adapter that talks to a rate-limited host owns one Limiter and calls
// Wait before every request; the pacing policy lives here, not in the
// orchestration code.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter paces outbound requests to one host.
type Limiter interface {
	// Wait blocks until the next request may be sent, or until ctx is done.
	Wait(ctx context.Context) error
}

// Interval is a fixed-interval limiter: at most one request per interval,
// with the first request passing immediately.
type Interval struct {
	interval time.Duration
	mu       sync.Mutex
	next     time.Time
}

// NewInterval creates a limiter allowing one request per interval.
func NewInterval(interval time.Duration) *Interval {
	return &Interval{interval: interval}
}

// PerSecond creates a limiter allowing n requests per second, evenly spaced.
func PerSecond(n float64) *Interval {
	return NewInterval(time.Duration(float64(time.Second) / n))
}

// Wait blocks until the configured interval has elapsed since the previous
// admitted request.
func (l *Interval) Wait(ctx context.Context) error {
	if l.interval <= 0 {
		return ctx.Err()
	}

	l.mu.Lock()
	now := time.Now()
	wait := l.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	l.next = now.Add(wait + l.interval)
	l.mu.Unlock()

	if wait == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TokenBucket allows short bursts up to a capacity, refilling at a steady
// rate. Useful for sources that tolerate bursts but enforce a sustained
// rate.
type TokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// NewTokenBucket creates a bucket with the given burst capacity and refill
// rate in tokens per second. The bucket starts full.
func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// Wait consumes one token, sleeping until one is available.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	for {
		ok, retryAfter := tb.take()
		if ok {
			return ctx.Err()
		}

		timer := time.NewTimer(retryAfter)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// take attempts to consume one token. When none is available it reports
// how long until the next token accrues.
func (tb *TokenBucket) take() (bool, time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true, 0
	}

	deficit := 1.0 - tb.tokens
	return false, time.Duration(deficit / tb.refillRate * float64(time.Second))
}

// None is a limiter that never blocks, for sources without an external
// rate limit.
type None struct{}

// Wait returns immediately.
func (None) Wait(ctx context.Context) error { return ctx.Err() }
