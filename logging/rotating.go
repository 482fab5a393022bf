package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// RotatingLogger writes log output to one file per ISO week and removes
// files older than the retention period.
type RotatingLogger struct {
	logDir      string
	currentFile *os.File
	currentWeek string
	retention   time.Duration
	mu          sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewRotatingLogger creates a rotating logger keeping retentionWeeks weeks
// of history.
func NewRotatingLogger(logDir string, retentionWeeks int) *RotatingLogger {
	ctx, cancel := context.WithCancel(context.Background())
	return &RotatingLogger{
		logDir:    logDir,
		retention: time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// weekKey returns the ISO week key in YYYY-Www format.
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// rotate opens the log file for the target week. Caller must hold mu.
func (rl *RotatingLogger) rotate(targetWeek string) error {
	if rl.currentFile != nil {
		if err := rl.currentFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file during rotation: %v\n", err)
		}
	}

	logPath := filepath.Join(rl.logDir, fmt.Sprintf("pharmatrack-%s.log", targetWeek))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	rl.currentFile = file
	rl.currentWeek = targetWeek
	return nil
}

// Write writes to the current week's file, rotating when the week changes.
func (rl *RotatingLogger) Write(p []byte) (int, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	week := weekKey(time.Now())
	if rl.currentWeek != week {
		if err := rl.rotate(week); err != nil {
			return 0, err
		}
	}

	if rl.currentFile == nil {
		return 0, fmt.Errorf("no log file available")
	}
	return rl.currentFile.Write(p)
}

// cleanupOldLogs removes log files older than the retention period.
func (rl *RotatingLogger) cleanupOldLogs() error {
	entries, err := os.ReadDir(rl.logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := time.Now().Add(-rl.retention)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "pharmatrack-") || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(rl.logDir, entry.Name()))
		}
	}
	return nil
}

// Close stops the background cleanup and closes the current file.
func (rl *RotatingLogger) Close() error {
	rl.cancel()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if rl.currentFile != nil {
		return rl.currentFile.Close()
	}
	return nil
}

// SetupLogger configures slog to log to both console (text) and a weekly
// rotating file (JSON). On any filesystem failure it degrades to
// console-only logging rather than failing startup.
func SetupLogger(logDir string, retentionWeeks int) *slog.Logger {
	level := levelFromEnv()

	consoleHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})

	if err := os.MkdirAll(logDir, 0755); err != nil {
		logger := slog.New(consoleHandler)
		logger.Error("Failed to create logs directory", "error", err)
		return logger
	}

	rl := NewRotatingLogger(logDir, retentionWeeks)
	rl.mu.Lock()
	rotateErr := rl.rotate(weekKey(time.Now()))
	rl.mu.Unlock()
	if rotateErr != nil {
		logger := slog.New(consoleHandler)
		logger.Error("Failed to initialize rotating logger", "error", rotateErr)
		return logger
	}

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-rl.ctx.Done():
				return
			case <-ticker.C:
				if err := rl.cleanupOldLogs(); err != nil {
					slog.Warn("Failed to cleanup old logs", "error", err)
				}
			}
		}
	}()

	fileHandler := slog.NewJSONHandler(rl, &slog.HandlerOptions{Level: level})
	return slog.New(&multiHandler{handlers: []slog.Handler{consoleHandler, fileHandler}})
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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

// multiHandler fans a record out to several slog handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
