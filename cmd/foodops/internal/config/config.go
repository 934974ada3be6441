// Package config loads the reference host's own runtime configuration
// (log level, output directory) via viper — never the kernel's scenario or
// catalog data, which the scenario package loads on its own per
// spec.md §6 ("the kernel is agnostic to YAML/CSV/JSON").
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// RuntimeConfig is the reference CLI's own configuration, independent of
// any one simulation run.
type RuntimeConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// Load reads runtime configuration from (in increasing priority) defaults,
// an optional config file, and environment variables. FOODOPS_LOG_LEVEL
// overrides log_level, matching spec.md §6's single documented env var.
func Load(configPath string) (*RuntimeConfig, error) {
	v := viper.New()
	v.SetDefault("log_level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	v.SetEnvPrefix("foodops")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg RuntimeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
