package output

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileLogger writes leveled messages to a rotating log file
type FileLogger struct {
	logger *slog.Logger
	closer *lumberjack.Logger
}

// NewFileLogger creates a rotating file logger at the given path. Rotation
// limits can be overridden with AIDER_LOG_MAX_SIZE (megabytes) and
// AIDER_LOG_MAX_BACKUPS.
func NewFileLogger(logFilePath string) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0o755); err != nil {
		return nil, err
	}

	lj := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    1,
		MaxBackups: 2,
		MaxAge:     30,
	}
	if v := os.Getenv("AIDER_LOG_MAX_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			lj.MaxSize = n
		}
	}
	if v := os.Getenv("AIDER_LOG_MAX_BACKUPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			lj.MaxBackups = n
		}
	}

	handler := slog.NewTextHandler(lj, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	return &FileLogger{
		logger: slog.New(handler),
		closer: lj,
	}, nil
}

// Log writes a message at the given level
func (f *FileLogger) Log(level, msg string) {
	var l slog.Level
	switch level {
	case "DEBUG":
		l = slog.LevelDebug
	case "WARN":
		l = slog.LevelWarn
	case "ERROR":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	f.logger.Log(context.Background(), l, msg)
}

// Close closes the underlying log file
func (f *FileLogger) Close() error {
	return f.closer.Close()
}
