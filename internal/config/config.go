// Package config loads the replay CLI's configuration from a YAML file
// (with environment overrides), using the same generic viper loader idiom
// the rest of the corpus's services use.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ReplayConfig configures a single replay run against one symbol's book.
type ReplayConfig struct {
	// InputPath is the CSV capture to replay: timestamp,action,side,price,size,id
	// (two header lines are skipped before decoding begins)
	InputPath string `mapstructure:"input_path" validate:"required"`
	// Symbol names the book being replayed, used only for logging/metrics
	// labels — the engine itself is single-symbol and doesn't branch on it.
	Symbol string `mapstructure:"symbol" validate:"required"`
	// LogLevel is one of debug/info/warn/error.
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	// InitialCapacity sizes the book's pool and hash index up front to
	// avoid growing during the hottest part of a replay.
	InitialCapacity int `mapstructure:"initial_capacity" validate:"gt=0"`
	// MetricsAddr, if non-empty, serves /metrics on this address for the
	// duration of the run.
	MetricsAddr string `mapstructure:"metrics_addr"`
}

var validate = validator.New()

// MustLoad reads config.yaml from the current directory if present (and
// LOB_* environment overrides), panicking if the file exists but cannot
// be parsed, or if the result fails validation. It mirrors the generic viper loader used across the
// corpus's services, plus a struct-tag validation pass in place of the
// hand-rolled required-field checks the CLI would otherwise need.
func MustLoad() *ReplayConfig {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("LOB")
	viper.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about; keys with
	// no default are bound explicitly so LOB_INPUT_PATH and
	// LOB_METRICS_ADDR reach Unmarshal.
	for _, key := range []string{"input_path", "metrics_addr"} {
		_ = viper.BindEnv(key)
	}

	viper.SetDefault("log_level", "info")
	viper.SetDefault("initial_capacity", 1024)
	viper.SetDefault("symbol", "SYMBOL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic("failed to read replay config: " + err.Error())
		}
	}

	var cfg ReplayConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		panic("failed to unmarshal replay config: " + err.Error())
	}
	if err := validate.Struct(&cfg); err != nil {
		panic(fmt.Sprintf("invalid replay config: %v", err))
	}
	return &cfg
}
