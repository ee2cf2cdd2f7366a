package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Config holds logger configuration.
type Config struct {
	Level        string // debug, info, warn, error
	Format       string // json, console
	Output       string // stdout, stderr
	EnableSource bool
	TimeFormat   string
}

// New creates a slog.Logger according to the configuration. Console
// output uses tint for colored, human-readable lines; anything else
// falls back to JSON.
func New(cfg *Config) *slog.Logger {
	var writer io.Writer
	switch cfg.Output {
	case "stderr":
		writer = os.Stderr
	default:
		writer = os.Stdout
	}

	level := parseLevel(cfg.Level)

	if cfg.Format == "console" || cfg.Format == "" {
		timeFormat := cfg.TimeFormat
		if timeFormat == "" {
			timeFormat = time.RFC3339
		}
		return slog.New(tint.NewHandler(writer, &tint.Options{
			Level:      level,
			AddSource:  cfg.EnableSource,
			TimeFormat: timeFormat,
		}))
	}

	return slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.EnableSource,
	}))
}

// NewDefault creates a console logger at info level.
func NewDefault() *slog.Logger {
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.TimeOnly,
	}))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
