package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds every configurable value for the metrics server.
type Config struct {
	Address     string `mapstructure:"address"`
	MetricsPath string `mapstructure:"metrics_path"`
	LogLevel    string `mapstructure:"log_level"`
}

// Load reads configuration from defaults, an optional config.yaml under
// path, and environment variables (e.g. ADDRESS, METRICS_PATH), in
// increasing priority.
func Load(path string) (config Config, err error) {
	v := viper.New()

	v.SetDefault("address", "localhost:8001")
	v.SetDefault("metrics_path", "/metrics")
	v.SetDefault("log_level", "info")

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err = v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}
