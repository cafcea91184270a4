package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/njchilds90/arithgen/internal/config"
)

func TestNew_Levels(t *testing.T) {
	cases := []struct {
		cfg     config.LoggingConfig
		verbose bool
		want    zapcore.Level
	}{
		{config.LoggingConfig{Level: "info", Format: "console"}, false, zapcore.InfoLevel},
		{config.LoggingConfig{Level: "warn", Format: "json"}, false, zapcore.WarnLevel},
		{config.LoggingConfig{Level: "error", Format: "console"}, true, zapcore.DebugLevel},
		{config.LoggingConfig{}, false, zapcore.InfoLevel},
	}
	for _, c := range cases {
		logger, err := New(c.cfg, c.verbose)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(c.want), "%+v should enable %s", c.cfg, c.want)
		if c.want > zapcore.DebugLevel {
			assert.False(t, logger.Core().Enabled(c.want-1), "%+v should not enable %s", c.cfg, c.want-1)
		}
	}
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "chatty"}, false)
	assert.ErrorContains(t, err, "invalid log level")
}
