package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// New builds a structured logger tagged with the app and environment. Production
// writes JSON lines; other environments get the console writer.
func New(appName, env string) zerolog.Logger {
	return NewWithWriter(os.Stdout, appName, env)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(out io.Writer, appName, env string) zerolog.Logger {
	if env != "production" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339Nano}
	}
	level := zerolog.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	return zerolog.New(out).Level(level).With().
		Timestamp().
		Str("app", appName).
		Str("env", env).
		Logger()
}

// IntoContext injects a logger into context for downstream use.
func IntoContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx, or a no-op logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
			return &logger
		}
	}
	nop := zerolog.Nop()
	return &nop
}
