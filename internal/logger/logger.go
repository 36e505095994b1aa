package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ankit-bind/shared-space-seekers/internal/config"
)

const serviceName = "shared-space-seekers"

// New creates the service logger. Development builds get the console writer,
// everything else logs JSON lines.
func New(cfg *config.Config) zerolog.Logger {
	level := parseLevel(cfg.LogLevel)

	var base zerolog.Logger
	if cfg.IsDevelopment() {
		base = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	} else {
		base = zerolog.New(os.Stdout)
	}

	return base.With().
		Timestamp().
		Str("service", serviceName).
		Str("environment", cfg.AppEnv).
		Logger().
		Level(level)
}

func parseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
