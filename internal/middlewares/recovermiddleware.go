package middlewares

import (
	"context"
	"fmt"

	"github.com/the127/tusk/internal/logging"
	"github.com/the127/tusk/internal/transport"
)

// RecoverMiddleware turns a panicking transport into a failed exchange.
func RecoverMiddleware() Middleware {
	return func(next transport.Handler) transport.Handler {
		return transport.HandlerFunc(func(ctx context.Context, req *transport.Request) (response *transport.Response, err error) {
			defer func() {
				if r := recover(); r != nil {
					logging.Logger.Errorf("recovered from panic: %v", r)
					response = nil
					err = fmt.Errorf("transport panicked: %v", r)
				}
			}()

			return next.Handle(ctx, req)
		})
	}
}
