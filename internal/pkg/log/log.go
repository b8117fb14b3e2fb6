// Package log provides the structured logger shared by every Vitrine component.
// Records are built with log/slog and routed to stdout, stderr and an optional
// rotated log file depending on the configuration.
package log

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"
)

var (
	multiLogger *slog.Logger
	loggerMu    sync.RWMutex
)

// Start initializes the logging package from the global configuration.
// If the configuration isn't initialized yet, stdout/stderr defaults are used.
func Start() error {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if multiLogger != nil {
		return ErrLoggerAlreadyInitialized
	}

	multiLogger = makeConfig().makeMultiLogger()

	return nil
}

// Stop closes the log file, if any, and disables logging until the next Start
func Stop() {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if rotatedLogFile != nil {
		rotatedLogFile.Close()
		rotatedLogFile = nil
	}

	multiLogger = nil
}

// Public logging methods
func Debug(msg string, args ...any) {
	logWithLevel(context.Background(), slog.LevelDebug, msg, args...)
}

func Info(msg string, args ...any) {
	logWithLevel(context.Background(), slog.LevelInfo, msg, args...)
}

func Warn(msg string, args ...any) {
	logWithLevel(context.Background(), slog.LevelWarn, msg, args...)
}

func Error(msg string, args ...any) {
	logWithLevel(context.Background(), slog.LevelError, msg, args...)
}

func logWithLevel(ctx context.Context, level slog.Level, msg string, args ...any) {
	loggerMu.RLock()
	logger := multiLogger
	loggerMu.RUnlock()

	if logger == nil || !logger.Enabled(ctx, level) {
		return
	}

	// skip [runtime.Callers, logWithLevel, the exported wrapper]
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	record := slog.NewRecord(time.Now(), level, msg, pcs[0])
	record.Add(args...)
	_ = logger.Handler().Handle(ctx, record)
}
