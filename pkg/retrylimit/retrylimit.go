// Package retrylimit provides an adaptive rate limiter and a bounded
// exponential-backoff retry loop for outbound clients.
package retrylimit

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// AdaptiveLimiter adjusts its rate on request outcomes: up on success, down on
// failure. Safe for concurrent use.
type AdaptiveLimiter struct {
	mu        sync.Mutex
	limiter   *rate.Limiter
	minLimit  rate.Limit
	maxLimit  rate.Limit
	stepUp    rate.Limit
	stepDown  float64
	lastError time.Time
}

// NewAdaptiveLimiter starts at initial requests per second, bounded by
// [min, max]. stepUp is added on success; stepDown multiplies on failure.
func NewAdaptiveLimiter(initial, min, max, stepUp rate.Limit, stepDown float64) *AdaptiveLimiter {
	if initial < 1 {
		initial = 1
	}
	if min < 1 {
		min = 1
	}
	return &AdaptiveLimiter{
		limiter:  rate.NewLimiter(initial, int(initial)),
		minLimit: min,
		maxLimit: max,
		stepUp:   stepUp,
		stepDown: stepDown,
	}
}

// Wait blocks until a token is available or ctx is done.
func (a *AdaptiveLimiter) Wait(ctx context.Context) error {
	return a.limiter.Wait(ctx)
}

// Success nudges the rate up, unless a failure happened in the last 10s.
func (a *AdaptiveLimiter) Success() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if time.Since(a.lastError) > 10*time.Second {
		a.adjust(a.limiter.Limit() + a.stepUp)
	}
}

// Failure cuts the rate after an error.
func (a *AdaptiveLimiter) Failure() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastError = time.Now()
	a.adjust(rate.Limit(float64(a.limiter.Limit()) * a.stepDown))
}

// CurrentLimit returns the current requests per second.
func (a *AdaptiveLimiter) CurrentLimit() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return float64(a.limiter.Limit())
}

func (a *AdaptiveLimiter) adjust(newLimit rate.Limit) {
	if newLimit > a.maxLimit {
		newLimit = a.maxLimit
	} else if newLimit < a.minLimit {
		newLimit = a.minLimit
	}
	if newLimit != a.limiter.Limit() {
		a.limiter.SetLimit(newLimit)
		burst := int(newLimit)
		if burst < 1 {
			burst = 1
		}
		a.limiter.SetBurst(burst)
	}
}

// WithRetryMax runs fn up to maxAttempts times with exponential backoff and
// jitter, waiting on lim (if non-nil) before each attempt. Stops early when
// fn succeeds or ctx is done.
func WithRetryMax(ctx context.Context, fn func() error, lim *AdaptiveLimiter, maxAttempts int) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	delay := 500 * time.Millisecond
	const maxDelay = 10 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if lim != nil {
			if err := lim.Wait(ctx); err != nil {
				return err
			}
		}

		lastErr = fn()
		if lastErr == nil {
			if lim != nil {
				lim.Success()
			}
			return nil
		}
		if lim != nil {
			lim.Failure()
		}
		if attempt == maxAttempts {
			break
		}

		sleep := delay + time.Duration(rand.Int63n(int64(delay/4)+1))
		log.Debug().Err(lastErr).Int("attempt", attempt).Dur("sleep", sleep).Msg("retrying request")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}

		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}

	return fmt.Errorf("max attempts (%d) exceeded: %w", maxAttempts, lastErr)
}
