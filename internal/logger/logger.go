// Package logger builds the zap loggers used by the wordsmith commands.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logging modes.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// New returns a logger for mode writing to stderr at level. Production mode
// emits JSON; any other mode emits console output. An empty level means info.
func New(mode, level string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", ModeProduction:
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

func parseLevel(level string) (zapcore.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// Redact returns a field for key whose value is masked when key names a
// credential (token, api key, secret, authorization).
func Redact(key, value string) zap.Field {
	if isSecretKey(key) && value != "" {
		return zap.String(key, "[REDACTED]")
	}
	return zap.String(key, value)
}

func isSecretKey(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.Contains(k, "token"),
		strings.Contains(k, "authorization"),
		strings.Contains(k, "secret"),
		strings.Contains(k, "api_key"),
		strings.Contains(k, "apikey"):
		return true
	default:
		return false
	}
}
