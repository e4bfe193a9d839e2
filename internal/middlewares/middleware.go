package middlewares

import "github.com/the127/tusk/internal/transport"

// Middleware wraps a transport.Handler with additional behaviour.
type Middleware func(next transport.Handler) transport.Handler

// Chain wraps handler so that the first middleware is the outermost one.
func Chain(handler transport.Handler, middlewares ...Middleware) transport.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}
