// Package logging provides the shared slog logger for the service: console
// plus weekly-rotating JSON file output, and the HTTP request middleware.
package logging

import (
	"log/slog"
	"os"
)

// LoggingService wraps the configured slog logger.
type LoggingService struct {
	Logger *slog.Logger
}

var DefaultLoggingService *LoggingService

// InitLogger initializes the global logger instance, keeping retentionWeeks
// weeks of rotated log files.
func InitLogger(logDir string, retentionWeeks int) {
	DefaultLoggingService = &LoggingService{
		Logger: SetupLogger(logDir, retentionWeeks),
	}
	slog.SetDefault(DefaultLoggingService.Logger)
}

func fallback(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Package-level functions for direct access. Each falls back to a console
// logger when the global logger has not been initialized, so early startup
// failures are never lost.

func Info(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallback(slog.LevelInfo).Info(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallback(slog.LevelWarn).Warn(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallback(slog.LevelError).Error(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallback(slog.LevelDebug).Debug(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Debug(msg, args...)
}
