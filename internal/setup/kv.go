package setup

import (
	"fmt"

	"github.com/The127/ioc"
	"github.com/the127/tusk/internal/config"
	"github.com/the127/tusk/internal/services/clock"
	"github.com/the127/tusk/internal/services/kv"
	"github.com/the127/tusk/internal/services/uploadStore"
)

func Kv(dc *ioc.DependencyCollection, storeConfig config.StoreConfig) {
	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) kv.Store {
		switch storeConfig.Mode {
		case config.StoreModeInMemory:
			return kv.NewMemoryStore()

		case config.StoreModeRedis:
			return kv.NewRedisStore(storeConfig.Redis)

		default:
			panic(fmt.Errorf("unsupported store mode: %s", storeConfig.Mode))
		}
	})
}

func UploadStore(dc *ioc.DependencyCollection, storeConfig config.StoreConfig) {
	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) uploadStore.Service {
		return uploadStore.NewService(
			ioc.GetDependency[kv.Store](dp),
			ioc.GetDependency[clock.Service](dp),
			storeConfig.Expiration,
		)
	})
}
