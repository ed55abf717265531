// Package log wraps slog with component-scoped loggers and handler
// selection for the ledger binaries.
package log

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Component names used across the ledger.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentToken   = "token"
)

// Config holds logger configuration
type Config struct {
	Level  string
	Format string
}

// New creates a logger from the configuration. Format "text" renders
// colorized console output, anything else falls back to JSON.
func New(config Config) *slog.Logger {
	level := parseLevel(config.Level)

	var handler slog.Handler
	if config.Format == "text" {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

// Setup creates the process logger and installs it as slog's default.
func Setup(config Config) *slog.Logger {
	logger := New(config)
	slog.SetDefault(logger)
	return logger
}

// WithComponent returns a logger tagged with a component name.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
