package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		level     string
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{name: "development default level", mode: ModeDevelopment, level: "", wantLevel: zapcore.InfoLevel},
		{name: "production debug", mode: ModeProduction, level: "debug", wantLevel: zapcore.DebugLevel},
		{name: "short prod alias", mode: "prod", level: "warn", wantLevel: zapcore.WarnLevel},
		{name: "level is case-insensitive", mode: "", level: "ERROR", wantLevel: zapcore.ErrorLevel},
		{name: "invalid level", mode: ModeDevelopment, level: "chatty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.mode, tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.wantLevel))
			assert.False(t, log.Core().Enabled(tt.wantLevel-1), "level below %s should be disabled", tt.wantLevel)
		})
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{key: "api_key", value: "sk-123", want: "[REDACTED]"},
		{key: "github_token", value: "ghp_abc", want: "[REDACTED]"},
		{key: "Authorization", value: "Bearer x", want: "[REDACTED]"},
		{key: "api_key", value: "", want: ""},
		{key: "model", value: "gpt-4o", want: "gpt-4o"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			f := Redact(tt.key, tt.value)
			assert.Equal(t, tt.key, f.Key)
			assert.Equal(t, tt.want, f.String)
		})
	}
}
