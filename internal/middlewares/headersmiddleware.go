package middlewares

import (
	"context"

	"github.com/the127/tusk/internal/transport"
)

// HeadersMiddleware adds static headers, e.g. Authorization, to every
// request. Headers already set on the request are left untouched.
func HeadersMiddleware(extra map[string]string) Middleware {
	return func(next transport.Handler) transport.Handler {
		return transport.HandlerFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
			if len(extra) == 0 {
				return next.Handle(ctx, req)
			}

			h := req.Headers.Clone()
			for key, value := range extra {
				if !h.Has(key) {
					h.Set(key, value)
				}
			}

			return next.Handle(ctx, &transport.Request{
				Method:  req.Method,
				Url:     req.Url,
				Headers: h,
				Body:    req.Body,
			})
		})
	}
}
