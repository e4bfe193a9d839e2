package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/the127/tusk/internal/args"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "TUSK_"

type Config struct {
	Server  ServerConfig
	Upload  UploadConfig
	Store   StoreConfig
	Metrics MetricsConfig
}

type ServerConfig struct {
	// Url is the collection endpoint new uploads are created at.
	Url     string
	Headers map[string]string
	Timeout time.Duration
}

type UploadConfig struct {
	ChunkSize      string
	MethodOverride bool
	// RateLimit caps the upload bandwidth in bytes per second, empty means unlimited.
	RateLimit string
	Retry     RetryConfig

	ChunkSizeBytes int64  `koanf:"-"`
	RateLimitBytes uint64 `koanf:"-"`
}

type RetryConfig struct {
	Attempts uint
	Delay    time.Duration
}

type StoreMode string

const (
	StoreModeInMemory StoreMode = "memory"
	StoreModeRedis    StoreMode = "redis"
)

type StoreConfig struct {
	Mode       StoreMode
	Expiration time.Duration
	Redis      RedisConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database int
}

type MetricsConfig struct {
	// Addr is the listen address of the /metrics endpoint, empty disables it.
	Addr string
}

var C Config

func Init() {
	k := koanf.New(".")

	if args.ConfigFilePath() != "" {
		_, err := os.Stat(args.ConfigFilePath())
		if err != nil {
			panic(fmt.Errorf("failed to stat config file: %w", err))
		}

		err = k.Load(file.Provider(args.ConfigFilePath()), yaml.Parser())
		if err != nil {
			panic(fmt.Errorf("failed to load config file: %w", err))
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		panic(fmt.Errorf("failed to load env provider: %w", err))
	}

	C = Config{}
	err = k.Unmarshal("", &C)
	if err != nil {
		panic(fmt.Errorf("failed to unmarshal config: %w", err))
	}

	setDefaultsOrPanic()
}

func setDefaultsOrPanic() {
	setServerDefaultsOrPanic()
	setUploadDefaultsOrPanic()
	setStoreDefaultsOrPanic()
}

func setServerDefaultsOrPanic() {
	if C.Server.Url != "" {
		_, err := url.ParseRequestURI(C.Server.Url)
		if err != nil {
			panic(fmt.Errorf("failed to parse server url: %w", err))
		}
	}

	if C.Server.Headers == nil {
		C.Server.Headers = map[string]string{}
	}

	if C.Server.Timeout == 0 {
		C.Server.Timeout = 30 * time.Second
	}
}

func setUploadDefaultsOrPanic() {
	if C.Upload.ChunkSize == "" {
		C.Upload.ChunkSize = "5MiB"
	}

	chunkSize, err := humanize.ParseBytes(C.Upload.ChunkSize)
	if err != nil {
		panic(fmt.Errorf("failed to parse upload chunk size: %w", err))
	}
	if chunkSize == 0 {
		panic("Upload.ChunkSize must be greater than zero.")
	}
	C.Upload.ChunkSizeBytes = int64(chunkSize)

	if C.Upload.RateLimit != "" {
		rateLimit, err := humanize.ParseBytes(C.Upload.RateLimit)
		if err != nil {
			panic(fmt.Errorf("failed to parse upload rate limit: %w", err))
		}
		C.Upload.RateLimitBytes = rateLimit
	}

	if C.Upload.Retry.Attempts == 0 {
		C.Upload.Retry.Attempts = 5
	}

	if C.Upload.Retry.Delay == 0 {
		C.Upload.Retry.Delay = 5 * time.Second
	}
}

func setStoreDefaultsOrPanic() {
	if C.Store.Mode == "" {
		if args.IsProduction() {
			panic("Store.Mode must be set in production.")
		}

		C.Store.Mode = StoreModeInMemory
	}

	if C.Store.Expiration == 0 {
		C.Store.Expiration = 24 * time.Hour
	}

	switch C.Store.Mode {
	case StoreModeInMemory:
		return

	case StoreModeRedis:
		setStoreRedisDefaultsOrPanic()

	default:
		panic(fmt.Errorf("unsupported store mode: %s", C.Store.Mode))
	}
}

func setStoreRedisDefaultsOrPanic() {
	if C.Store.Redis.Host == "" {
		if args.IsProduction() {
			panic("Store.Redis.Host must be set in production.")
		}

		C.Store.Redis.Host = "localhost"
	}

	if C.Store.Redis.Port == 0 {
		C.Store.Redis.Port = 6379
	}
}
