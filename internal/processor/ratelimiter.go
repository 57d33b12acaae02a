package processor

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/healthwatch/riskengine/internal/logging"
)

// RateLimiter throttles batch item processing to a configured items/sec.
type RateLimiter struct {
	limiter *rate.Limiter
	logger  logging.Logger
}

// NewRateLimiter creates a rate limiter for the given items/sec and burst.
func NewRateLimiter(itemsPerSecond, burst int, logger logging.Logger) *RateLimiter {
	if itemsPerSecond <= 0 {
		itemsPerSecond = 100
	}
	if burst <= 0 {
		burst = itemsPerSecond
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(itemsPerSecond), burst),
		logger:  logger,
	}
}

// Wait blocks until the limiter allows one more item or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		if r.logger != nil {
			r.logger.Warn("rate limiter wait interrupted", logging.Error(err))
		}
		return err
	}
	return nil
}

// Allow reports whether an item may proceed without waiting.
func (r *RateLimiter) Allow() bool { return r.limiter.Allow() }

// SetLimit updates the items/sec limit.
func (r *RateLimiter) SetLimit(itemsPerSecond int) {
	r.limiter.SetLimit(rate.Limit(itemsPerSecond))
}
