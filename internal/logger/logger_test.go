package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		config    *LoggerConfig
		expectErr bool
		wantLevel zerolog.Level
	}{
		{
			name: "prod info",
			config: &LoggerConfig{
				ServiceName: "test-service", ServiceVersion: "1.0.0", Env: "prod", Level: "info",
				TimeField: "timestamp", TimeFormat: "unix", Fields: map[string]interface{}{"key": "value"},
			},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:      "wrong env",
			config:    &LoggerConfig{ServiceName: "bad-service", Env: "wrong-env", Level: "debug"},
			expectErr: true,
		},
		{
			name:      "invalid level",
			config:    &LoggerConfig{Env: "prod", Level: "invalid-level"},
			expectErr: true,
		},
		{
			name:      "staging warn",
			config:    &LoggerConfig{ServiceName: "test-service", Env: "staging", Level: "warn", Stacktrace: true},
			wantLevel: zerolog.WarnLevel,
		},
		{
			name:      "test trace",
			config:    &LoggerConfig{Env: "test", Level: "trace", Format: "console", OutputTarget: "stderr"},
			wantLevel: zerolog.TraceLevel,
		},
		{
			name:      "prod error with caller",
			config:    &LoggerConfig{Env: "prod", Level: "error", WithCaller: true, Fields: map[string]interface{}{"customField": "customValue"}},
			wantLevel: zerolog.ErrorLevel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.config)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestSetDefaults_FollowEnvironment(t *testing.T) {
	dev := &LoggerConfig{Env: "dev"}
	dev.setDefaults()
	assert.Equal(t, "debug", dev.Level)
	assert.Equal(t, "console", dev.Format)
	assert.True(t, dev.WithCaller)
	assert.False(t, dev.Stacktrace)

	prod := &LoggerConfig{}
	prod.setDefaults()
	assert.Equal(t, "prod", prod.Env)
	assert.Equal(t, "info", prod.Level)
	assert.Equal(t, "json", prod.Format)
	assert.Equal(t, "listresult", prod.ServiceName)
	assert.True(t, prod.Stacktrace)
	assert.NotNil(t, prod.Fields)
}

func TestTimeFieldFormat(t *testing.T) {
	assert.Equal(t, zerolog.TimeFormatUnix, timeFieldFormat("unix"))
	assert.Equal(t, zerolog.TimeFormatUnixMs, timeFieldFormat("unix_ms"))
	assert.Equal(t, "2006-01-02T15:04:05Z07:00", timeFieldFormat("rfc3339"))
	assert.Equal(t, "15:04", timeFieldFormat("15:04"))
}
