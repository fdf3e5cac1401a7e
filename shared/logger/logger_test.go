package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"locally/config"
	"locally/shared/constant"
	"locally/shared/logger"
)

func restore(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("insert failed"))

	assert.Contains(t, buf.String(), "insert failed")
}

func TestUseJSON(t *testing.T) {
	restore(t)

	var buf bytes.Buffer

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.App.Name = "locally"

	logger.UseJSON(cfg, &buf)
	log.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"app":"locally"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestUseJSONOutsideProduction(t *testing.T) {
	restore(t)

	var buf bytes.Buffer

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvDevelopment

	logger.UseJSON(cfg, &buf)
	log.Info().Msg("hello")

	assert.Empty(t, buf.String())
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		logLevel string
		expected zerolog.Level
	}{
		{logLevel: "debug", expected: zerolog.DebugLevel},
		{logLevel: "info", expected: zerolog.InfoLevel},
		{logLevel: "warn", expected: zerolog.WarnLevel},
		{logLevel: "error", expected: zerolog.ErrorLevel},
		{logLevel: "", expected: zerolog.TraceLevel},
		{logLevel: "verbose", expected: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}
