package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LoggingConfig
		wantErr bool
	}{
		{"json", LoggingConfig{Level: "info", Format: FormatJSON}, false},
		{"console", LoggingConfig{Level: "debug", Format: FormatConsole}, false},
		{"stderr", LoggingConfig{Level: "warn", Format: FormatJSON, Stderr: true}, false},
		{"upper case", LoggingConfig{Level: "ERROR", Format: "JSON"}, false},
		{"invalid level", LoggingConfig{Level: "trace", Format: FormatJSON}, true},
		{"invalid format", LoggingConfig{Level: "info", Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNewLogger_LevelEnabled(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "warn", Format: FormatJSON})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel), "debug must be disabled at warn")
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel), "error must be enabled at warn")
}
