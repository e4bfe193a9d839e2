package middlewares

import (
	"context"
	"fmt"
	"time"

	"github.com/the127/tusk/internal/metrics"
	"github.com/the127/tusk/internal/transport"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware delays requests until limiter grants one token per body
// byte. Bodies larger than the burst are paid for in burst-sized steps.
func RateLimitMiddleware(limiter *rate.Limiter) Middleware {
	return func(next transport.Handler) transport.Handler {
		return transport.HandlerFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			if limiter.Limit() == rate.Inf || limiter.Burst() <= 0 {
				return next.Handle(ctx, req)
			}

			start := time.Now()

			remaining := len(req.Body)
			for remaining > 0 {
				n := min(remaining, limiter.Burst())
				err := limiter.WaitN(ctx, n)
				if err != nil {
					return nil, fmt.Errorf("waiting for upload bandwidth: %w", err)
				}
				remaining -= n
			}

			if len(req.Body) > 0 {
				metrics.RateLimitWait.Observe(time.Since(start).Seconds())
			}

			return next.Handle(ctx, req)
		})
	}
}

// NewLimiter creates a limiter for bytesPerSecond with a one second burst.
func NewLimiter(bytesPerSecond int) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(bytesPerSecond), bytesPerSecond)
}
