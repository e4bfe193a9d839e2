package middlewares

import (
	"context"
	"strconv"
	"time"

	"github.com/the127/tusk/internal/metrics"
	"github.com/the127/tusk/internal/transport"
)

func MetricsMiddleware() Middleware {
	return func(next transport.Handler) transport.Handler {
		return transport.HandlerFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			start := time.Now()
			response, err := next.Handle(ctx, req)
			metrics.ExchangeDuration.WithLabelValues(req.Method.String()).Observe(time.Since(start).Seconds())

			if err != nil {
				metrics.ExchangesTotal.WithLabelValues(req.Method.String(), "error").Inc()
				return nil, err
			}

			metrics.ExchangesTotal.WithLabelValues(req.Method.String(), strconv.Itoa(response.StatusCode)).Inc()
			metrics.BytesSent.Add(float64(len(req.Body)))
			return response, nil
		})
	}
}
