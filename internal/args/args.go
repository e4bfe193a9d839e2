package args

import "github.com/spf13/pflag"

var (
	configFilePath string
	production     bool
)

// Bind registers the global flags on the given flag set. The values can be
// read through the accessors once the flags are parsed.
func Bind(flags *pflag.FlagSet) {
	flags.StringVar(&configFilePath, "config", "", "path to a yaml config file")
	flags.BoolVar(&production, "production", false, "use production defaults (json logs, strict config)")
}

func ConfigFilePath() string {
	return configFilePath
}

func IsProduction() bool {
	return production
}
