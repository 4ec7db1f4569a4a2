package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad_DefaultsAndEnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("LOB_INPUT_PATH", "capture.csv")
	t.Setenv("LOB_SYMBOL", "BTCUSD")

	cfg := MustLoad()
	assert.Equal(t, "capture.csv", cfg.InputPath)
	assert.Equal(t, "BTCUSD", cfg.Symbol)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1024, cfg.InitialCapacity)
}

func TestMustLoad_MissingRequiredFieldPanics(t *testing.T) {
	viper.Reset()
	// no LOB_INPUT_PATH set: input_path is required and has no default.

	require.Panics(t, func() { MustLoad() })
}

func TestMustLoad_InvalidLogLevelPanics(t *testing.T) {
	viper.Reset()
	t.Setenv("LOB_INPUT_PATH", "capture.csv")
	t.Setenv("LOB_LOG_LEVEL", "verbose")

	require.Panics(t, func() { MustLoad() })
}
