package middlewares

import (
	"context"
	"time"

	"github.com/the127/tusk/internal/logging"
	"github.com/the127/tusk/internal/transport"
)

func LoggingMiddleware() Middleware {
	return func(next transport.Handler) transport.Handler {
		return transport.HandlerFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			start := time.Now()

			response, err := next.Handle(ctx, req)
			if err != nil {
				logging.Logger.Warnf("Transport Request failed: %s %s: %s", req.Method, req.Url, err)
				return nil, err
			}

			logging.Logger.Debugf("Transport Request: %s %s (%d bytes) -> %d in %s",
				req.Method, req.Url, len(req.Body), response.StatusCode, time.Since(start))
			return response, nil
		})
	}
}
