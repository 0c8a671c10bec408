package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const serviceName = "matchday-tracker"

// New logs everything down to debug; the configured LOG_LEVEL is applied
// globally once config has loaded.
func New() zerolog.Logger {
	return WithLevel(os.Stdout, zerolog.DebugLevel)
}

func WithLevel(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Logger()
}

// ApplyLevel sets the process wide minimum level from a config string.
// Unknown values fall back to info.
func ApplyLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	return parsed
}

var Module = fx.Provide(New)
