package setup

import (
	"github.com/The127/ioc"
	"github.com/the127/tusk/internal/config"
	"github.com/the127/tusk/internal/middlewares"
	"github.com/the127/tusk/internal/transport"
	"github.com/the127/tusk/internal/transport/nethttp"
)

// Transport registers the http transport wrapped in the middleware chain.
func Transport(dc *ioc.DependencyCollection, c config.Config) {
	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) transport.Handler {
		chain := []middlewares.Middleware{
			middlewares.RecoverMiddleware(),
			middlewares.LoggingMiddleware(),
			middlewares.MetricsMiddleware(),
			middlewares.HeadersMiddleware(c.Server.Headers),
		}

		if c.Upload.RateLimitBytes > 0 {
			chain = append(chain, middlewares.RateLimitMiddleware(middlewares.NewLimiter(int(c.Upload.RateLimitBytes))))
		}

		return middlewares.Chain(nethttp.New(nethttp.Config{
			Timeout: c.Server.Timeout,
		}), chain...)
	})
}
