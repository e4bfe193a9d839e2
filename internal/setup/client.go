package setup

import (
	"github.com/The127/ioc"
	"github.com/the127/tusk/internal/config"
	"github.com/the127/tusk/internal/transport"
	"github.com/the127/tusk/internal/tus"
)

// Client registers the tus client on top of the registered transport.
func Client(dc *ioc.DependencyCollection, uploadConfig config.UploadConfig, opts ...tus.Option) {
	if uploadConfig.MethodOverride {
		opts = append(opts, tus.WithMethodOverride())
	}

	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) *tus.Client {
		return tus.New(ioc.GetDependency[transport.Handler](dp), opts...)
	})
}
