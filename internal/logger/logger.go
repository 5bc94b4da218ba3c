package logger

import (
	"log/slog"
	"os"
	"strings"
)

var (
	// Logger is the global slog logger instance
	Logger *slog.Logger
)

// Init initializes the global logger with the configured level from LOG_LEVEL environment variable
// Default level is INFO for production, DEBUG for development
func Init() {
	InitWithLevel(os.Getenv("LOG_LEVEL"))
}

// InitWithLevel initializes the global logger with an explicit level string
func InitWithLevel(logLevelStr string) {
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	var level slog.Level
	switch strings.ToLower(logLevelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// JSON handler for structured logging
	handler := slog.NewJSONHandler(os.Stdout, opts)

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	Logger.Info("Logger initialized", "level", logLevelStr)
}

// active returns the global logger, initializing it from the environment on
// first use so callers that never ran Init cannot hit a nil logger
func active() *slog.Logger {
	if Logger == nil {
		Init()
	}
	return Logger
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	active().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	active().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	active().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	active().Error(msg, args...)
}
